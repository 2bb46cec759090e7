package memcap

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/memcap/errors"
)

func TestNew_NilPointer(t *testing.T) {
	t.Run("read-only", func(t *testing.T) {
		if _, err := New[ReadOnly]((*int)(nil)); !stderrors.Is(err, errors.ErrNilPointer) {
			t.Fatalf("expected nil-pointer error, got %v", err)
		}
	})
	t.Run("writable", func(t *testing.T) {
		if _, err := New[Writable]((*int)(nil)); !stderrors.Is(err, errors.ErrNilPointer) {
			t.Fatalf("expected nil-pointer error, got %v", err)
		}
	})
	t.Run("frozen", func(t *testing.T) {
		if _, err := New[Frozen[Writable]]((*string)(nil)); !stderrors.Is(err, errors.ErrNilPointer) {
			t.Fatalf("expected nil-pointer error, got %v", err)
		}
	})
}

func TestNew_RoundTrip(t *testing.T) {
	x := 42

	a, err := New[Writable](&x)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.ToConst() != &x {
		t.Fatal("ToConst did not return the original pointer")
	}
	if ToMut(a) != &x {
		t.Fatal("ToMut did not return the original pointer")
	}

	r, err := New[ReadOnly](&x)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if r.ToConst() != &x {
		t.Fatal("ToConst did not return the original pointer")
	}
}

func TestFromRef(t *testing.T) {
	x := "hello"
	a := FromRef(&x)
	if a.ToConst() != &x {
		t.Fatal("FromRef did not preserve the pointer")
	}
	if a.Render() != "read-only" {
		t.Fatalf("FromRef marker = %q, want read-only", a.Render())
	}
}

func TestFromMut(t *testing.T) {
	x := 1
	a := FromMut(&x)
	*ToMut(a) = 2
	if x != 2 {
		t.Fatalf("write through FromMut address: x = %d, want 2", x)
	}
}

func TestFromRef_NilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("FromRef(nil) did not panic")
		}
	}()
	FromRef((*int)(nil))
}

func TestFromMut_NilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("FromMut(nil) did not panic")
		}
	}()
	FromMut((*byte)(nil))
}

// The headline scenario: present a writable address as read-only to code
// that must not write, then restore it and write through it.
func TestFreezeThaw(t *testing.T) {
	x := 7
	a := FromMut(&x)

	f := Freeze(a)
	if got := f.ToConst(); got != &x {
		t.Fatal("frozen address lost the pointer")
	}
	// ToMut(f) does not compile: Address[Frozen[Writable], int] has no
	// writable export.

	a2 := Thaw(f)
	if !Equal(a, a2) {
		t.Fatal("thawed address differs from the original")
	}
	*ToMut(a2) = 8
	if x != 8 {
		t.Fatalf("x = %d, want 8", x)
	}
}

func TestFreezeThaw_Nested(t *testing.T) {
	x := uint32(5)
	a := FromMut(&x)

	fff := Freeze(Freeze(Freeze(a)))
	if got := fff.Render(); got != "writable" {
		t.Fatalf("Render through frozen layers = %q, want writable", got)
	}

	back := Thaw(Thaw(Thaw(fff)))
	if !Equal(a, back) {
		t.Fatal("triple freeze/thaw did not restore the original address")
	}
	*ToMut(back) = 6
	if x != 6 {
		t.Fatalf("x = %d, want 6", x)
	}
}

func TestDemoteAndAssertWritable(t *testing.T) {
	x := 10
	a := FromMut(&x)

	ro := Demote(a)
	if ro.ToConst() != &x {
		t.Fatal("Demote changed the pointer")
	}

	// The address genuinely originated as writable, so re-promotion is
	// within contract.
	rw := UnsafeAssertWritable(ro)
	if ToMut(rw) != ToMut(a) {
		t.Fatal("re-promoted address exports a different pointer")
	}
	*ToMut(rw) = 11
	if x != 11 {
		t.Fatalf("x = %d, want 11", x)
	}
}

func TestOffset(t *testing.T) {
	arr := [4]uint64{10, 20, 30, 40}
	a := FromMut(&arr[0])

	b := a.Offset(2)
	if b.ToConst() != &arr[2] {
		t.Fatal("Offset(2) did not land on element 2")
	}
	if *b.ToConst() != 30 {
		t.Fatalf("*Offset(2) = %d, want 30", *b.ToConst())
	}

	if !Equal(a, a.Offset(0)) {
		t.Fatal("Offset(0) is not a no-op")
	}
	if !Equal(a, b.Offset(-2)) {
		t.Fatal("Offset(2) then Offset(-2) did not restore the address")
	}
}

func TestWrappingOffset(t *testing.T) {
	arr := [3]int32{1, 2, 3}
	a := FromRef(&arr[0])

	if !Equal(a, a.WrappingOffset(0)) {
		t.Fatal("WrappingOffset(0) is not a no-op")
	}
	if !Equal(a.Offset(1), a.WrappingOffset(1)) {
		t.Fatal("WrappingOffset disagrees with Offset inside the allocation")
	}
	if !Equal(a, a.WrappingOffset(2).WrappingOffset(-2)) {
		t.Fatal("WrappingOffset(k) then (-k) did not restore the address")
	}
}

func TestCast(t *testing.T) {
	x := uint64(0x1122334455667788)
	a := FromRef(&x)

	b := Cast[byte](a)
	if b.Addr() != a.Addr() {
		t.Fatal("Cast changed the address value")
	}
	if b.Render() != "read-only" {
		t.Fatalf("Cast marker = %q, want read-only", b.Render())
	}

	// Marker is preserved through a cast of a frozen address too.
	f := Freeze(FromMut(&x))
	c := Cast[uint32](f)
	if c.Addr() != f.Addr() {
		t.Fatal("Cast of frozen address changed the address value")
	}
}
