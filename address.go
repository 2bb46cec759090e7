package memcap

import (
	"unsafe"

	"github.com/wippyai/memcap/errors"
)

// Address is a non-nil typed pointer whose access permission is carried by
// the marker type M instead of a runtime tag. The wrapper is the size of a
// plain pointer: markers are zero-size, and no permission information
// exists at runtime.
//
// An Address does not own its pointee. It witnesses a permission to access
// it, and the pointee's lifetime and true mutability provenance remain the
// caller's responsibility. Addresses are freely copyable and usable as map
// keys.
type Address[M Mutability, T any] struct {
	ptr  *T
	mark M
}

// New wraps p in an Address with the caller-chosen marker. The marker must
// match the real provenance of the pointer; that cannot be verified from a
// bare pointer value. A nil p yields a nil-pointer error.
func New[M Mutability, T any](p *T) (Address[M, T], error) {
	if p == nil {
		return Address[M, T]{}, errors.NilPointer("memcap.New")
	}
	return Address[M, T]{ptr: p}, nil
}

// FromRef wraps a pointer to a live value as a read-only address.
//
// Unlike New this does not return an error: the intended argument is the
// address of a value the caller holds, which is never nil. Panics if p is
// nil anyway.
func FromRef[T any](p *T) Address[ReadOnly, T] {
	if p == nil {
		panic("memcap: FromRef called with nil pointer")
	}
	return Address[ReadOnly, T]{ptr: p}
}

// FromMut wraps a pointer to a live value as a writable address.
//
// Panics if p is nil; see FromRef.
func FromMut[T any](p *T) Address[Writable, T] {
	if p == nil {
		panic("memcap: FromMut called with nil pointer")
	}
	return Address[Writable, T]{ptr: p}
}

// Freeze adds one Frozen layer to the address's marker, revoking write
// access until Thaw. The pointer value is untouched; only the static
// permission changes. A free function like Thaw: the marker transition
// re-instantiates Address with a new marker argument, which is not legal
// in a method's signature.
func Freeze[M Mutability, T any](a Address[M, T]) Address[Frozen[M], T] {
	return Address[Frozen[M], T]{ptr: a.ptr}
}

// Thaw removes one Frozen layer, restoring the permission the address had
// before the matching Freeze. It is only expressible on a frozen address:
// thawing an address that was never frozen, or thawing more times than it
// was frozen, is a compile error.
func Thaw[M Mutability, T any](a Address[Frozen[M], T]) Address[M, T] {
	return Address[M, T]{ptr: a.ptr}
}

// Demote permanently reclassifies a writable address as read-only. This is
// always sound: it only gives up permission. The downgrade is not tracked,
// so it cannot be undone with Thaw; see UnsafeAssertWritable.
func Demote[T any](a Address[Writable, T]) Address[ReadOnly, T] {
	return Address[ReadOnly, T]{ptr: a.ptr}
}

// UnsafeAssertWritable reclassifies a read-only address as writable with no
// check of any kind.
//
// The caller must guarantee that the pointee was originally writable (for
// example, the address came from Demote or from a discarded Frozen wrapper)
// and that no live read-only view requires it to stay unwritten. Writing
// through the result otherwise corrupts state that other code assumed
// immutable. Prefer Freeze and Thaw, which track the downgrade in the type
// and need no such contract.
func UnsafeAssertWritable[T any](a Address[ReadOnly, T]) Address[Writable, T] {
	return Address[Writable, T]{ptr: a.ptr}
}

// Offset returns the address moved by count elements of T, preserving the
// marker. As with raw pointer arithmetic, the result must stay within the
// same allocation (one past its end is allowed for a non-dereferenced
// address). Panics if the result is nil.
func (a Address[M, T]) Offset(count int) Address[M, T] {
	p := (*T)(unsafe.Add(unsafe.Pointer(a.ptr), count*int(unsafe.Sizeof(*a.ptr))))
	if p == nil {
		panic("memcap: Offset produced a nil address")
	}
	return Address[M, T]{ptr: p}
}

// WrappingOffset returns the address moved by count elements of T using
// modular arithmetic on the numeric address. The result may point outside
// the original allocation and is only safe to dereference if it does not.
// Panics if the result is nil.
func (a Address[M, T]) WrappingOffset(count int) Address[M, T] {
	raw := uintptr(unsafe.Pointer(a.ptr)) + uintptr(count)*unsafe.Sizeof(*a.ptr)
	p := (*T)(unsafe.Pointer(raw))
	if p == nil {
		panic("memcap: WrappingOffset produced a nil address")
	}
	return Address[M, T]{ptr: p}
}

// Cast reinterprets the referent type, preserving the marker and the
// address value. Layout and alignment compatibility between T and U are the
// caller's responsibility; nothing is checked.
func Cast[U any, M Mutability, T any](a Address[M, T]) Address[M, U] {
	return Address[M, U]{ptr: (*U)(unsafe.Pointer(a.ptr))}
}

// ToConst returns the raw pointer for reading. Available at any
// permission; the caller must not write through it.
func (a Address[M, T]) ToConst() *T {
	return a.ptr
}

// ToMut returns the raw pointer for writing. Only a writable address has
// this export; a read-only or frozen address does not type-check here.
func ToMut[T any](a Address[Writable, T]) *T {
	return a.ptr
}
