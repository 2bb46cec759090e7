package wasmmem

import (
	stderrors "errors"
	"testing"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/memcap/errors"
	"github.com/wippyai/memcap/region"
)

// fakeMemory implements the parts of api.Memory the adapter touches,
// backed by a plain byte slice. The embedded interface panics on anything
// unimplemented.
type fakeMemory struct {
	api.Memory
	data []byte
}

func (m *fakeMemory) Size() uint32 {
	return uint32(len(m.data))
}

func (m *fakeMemory) Read(offset, byteCount uint32) ([]byte, bool) {
	if uint64(offset)+uint64(byteCount) > uint64(len(m.data)) {
		return nil, false
	}
	return m.data[offset : offset+byteCount : offset+byteCount], true
}

func TestAttach(t *testing.T) {
	mem := &fakeMemory{data: make([]byte, 64)}
	mem.data[10] = 0x7F

	r, err := Attach(mem)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if r.Size() != 64 {
		t.Fatalf("Size() = %d, want 64", r.Size())
	}
	if v, _ := r.ReadU8(10); v != 0x7F {
		t.Fatalf("ReadU8(10) = %#x, want 0x7f", v)
	}

	// The region aliases the memory, so writes land in the buffer.
	if err := region.WriteU8(r, 0, 0xAA); err != nil {
		t.Fatalf("WriteU8 failed: %v", err)
	}
	if mem.data[0] != 0xAA {
		t.Fatal("write through region did not reach the backing buffer")
	}
}

func TestAttach_NilMemory(t *testing.T) {
	if _, err := Attach(nil); !stderrors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestAttach_EmptyMemory(t *testing.T) {
	if _, err := Attach(&fakeMemory{}); !stderrors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestView(t *testing.T) {
	mem := &fakeMemory{data: make([]byte, 32)}
	copy(mem.data[8:], []byte{1, 2, 3, 4})

	v, err := View(mem, 8, 4)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if v.Size() != 4 {
		t.Fatalf("Size() = %d, want 4", v.Size())
	}
	if got, _ := v.ReadU32(0); got != 0x04030201 {
		t.Fatalf("ReadU32 = %#x, want 0x04030201", got)
	}

	if _, err := View(mem, 30, 8); !stderrors.Is(err, errors.ErrOutOfBounds) {
		t.Fatalf("expected out-of-bounds error, got %v", err)
	}
}
