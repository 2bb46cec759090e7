package region

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/wippyai/memcap"
	"github.com/wippyai/memcap/errors"
)

// Region is a sized window over raw memory, generic over the same
// permission markers as memcap.Address. Loads are available at any
// permission; stores only compile against Region[memcap.Writable].
//
// A Region aliases memory it does not own. The caller is responsible for
// the window lying within a single live allocation for as long as the
// region is used.
type Region[M memcap.Mutability] struct {
	base memcap.Address[M, byte]
	size uint32
}

// New builds a region of size bytes starting at base.
func New[M memcap.Mutability](base memcap.Address[M, byte], size uint32) Region[M] {
	return Region[M]{base: base, size: size}
}

// FromBytes views a byte slice as a writable region. An empty slice has no
// base address and is rejected with a nil-pointer error.
func FromBytes(b []byte) (Region[memcap.Writable], error) {
	if len(b) == 0 {
		return Region[memcap.Writable]{}, errors.NilPointer("region.FromBytes")
	}
	if uint64(len(b)) > math.MaxUint32 {
		return Region[memcap.Writable]{}, errors.Overflow("slice length", uint64(len(b)))
	}
	return New(memcap.FromMut(&b[0]), uint32(len(b))), nil
}

// Size returns the region length in bytes.
func (r Region[M]) Size() uint32 {
	return r.size
}

// Base returns the region's starting address.
func (r Region[M]) Base() memcap.Address[M, byte] {
	return r.base
}

// Freeze returns the same window with write access revoked until Thaw.
func Freeze[M memcap.Mutability](r Region[M]) Region[memcap.Frozen[M]] {
	return Region[memcap.Frozen[M]]{base: memcap.Freeze(r.base), size: r.size}
}

// Thaw restores the permission a frozen region had before Freeze.
func Thaw[M memcap.Mutability](r Region[memcap.Frozen[M]]) Region[M] {
	return Region[M]{base: memcap.Thaw(r.base), size: r.size}
}

// Slice returns the subwindow [offset, offset+length), preserving the
// permission marker.
func (r Region[M]) Slice(offset, length uint32) (Region[M], error) {
	if err := r.check(offset, length); err != nil {
		return Region[M]{}, err
	}
	return Region[M]{base: r.base.Offset(int(offset)), size: length}, nil
}

func (r Region[M]) check(offset, length uint32) error {
	if uint64(offset)+uint64(length) > uint64(r.size) {
		return errors.OutOfBounds(offset, length, r.size)
	}
	return nil
}

// bytes exposes the window for reading only.
func (r Region[M]) bytes() []byte {
	return unsafe.Slice(r.base.ToConst(), int(r.size))
}

// Read copies length bytes starting at offset out of the region.
func (r Region[M]) Read(offset, length uint32) ([]byte, error) {
	if err := r.check(offset, length); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, r.bytes()[offset:])
	return out, nil
}

// ReadU8 reads the byte at offset.
func (r Region[M]) ReadU8(offset uint32) (uint8, error) {
	if err := r.check(offset, 1); err != nil {
		return 0, err
	}
	return r.bytes()[offset], nil
}

// ReadU16 reads an unsigned 16-bit little-endian value at offset.
func (r Region[M]) ReadU16(offset uint32) (uint16, error) {
	if err := r.check(offset, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.bytes()[offset:]), nil
}

// ReadU32 reads an unsigned 32-bit little-endian value at offset.
func (r Region[M]) ReadU32(offset uint32) (uint32, error) {
	if err := r.check(offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.bytes()[offset:]), nil
}

// ReadU64 reads an unsigned 64-bit little-endian value at offset.
func (r Region[M]) ReadU64(offset uint32) (uint64, error) {
	if err := r.check(offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(r.bytes()[offset:]), nil
}

// mutBytes exposes the window of a writable region for writing.
func mutBytes(r Region[memcap.Writable]) []byte {
	return unsafe.Slice(memcap.ToMut(r.base), int(r.size))
}

// Write copies data into the region at offset. Stores require a writable
// region; a read-only or frozen region does not type-check here.
func Write(r Region[memcap.Writable], offset uint32, data []byte) error {
	if uint64(len(data)) > math.MaxUint32 {
		return errors.Overflow("write length", uint64(len(data)))
	}
	if err := r.check(offset, uint32(len(data))); err != nil {
		return err
	}
	copy(mutBytes(r)[offset:], data)
	return nil
}

// WriteU8 writes a byte at offset.
func WriteU8(r Region[memcap.Writable], offset uint32, value uint8) error {
	if err := r.check(offset, 1); err != nil {
		return err
	}
	mutBytes(r)[offset] = value
	return nil
}

// WriteU16 writes an unsigned 16-bit little-endian value at offset.
func WriteU16(r Region[memcap.Writable], offset uint32, value uint16) error {
	if err := r.check(offset, 2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(mutBytes(r)[offset:], value)
	return nil
}

// WriteU32 writes an unsigned 32-bit little-endian value at offset.
func WriteU32(r Region[memcap.Writable], offset uint32, value uint32) error {
	if err := r.check(offset, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(mutBytes(r)[offset:], value)
	return nil
}

// WriteU64 writes an unsigned 64-bit little-endian value at offset.
func WriteU64(r Region[memcap.Writable], offset uint32, value uint64) error {
	if err := r.check(offset, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(mutBytes(r)[offset:], value)
	return nil
}
