package memcap

import (
	"cmp"
	"fmt"
	"hash/maphash"
	"unsafe"
)

// Addr returns the numeric value of the address.
func (a Address[M, T]) Addr() uintptr {
	return uintptr(unsafe.Pointer(a.ptr))
}

// Render returns the diagnostic tag of the address's permission marker.
func (a Address[M, T]) Render() string {
	return a.mark.Render()
}

// String formats the numeric address in hex. The marker does not appear:
// two addresses over the same location format identically at any
// permission.
func (a Address[M, T]) String() string {
	return fmt.Sprintf("%#x", a.Addr())
}

// Hash hashes the numeric address with the given seed. Addresses hash
// equal exactly when Equal reports them equal.
func (a Address[M, T]) Hash(seed maphash.Seed) uint64 {
	return maphash.Comparable(seed, a.Addr())
}

// Equal reports whether two addresses refer to the same location. Markers
// and referent types are ignored: this is pointer identity, not type
// identity.
func Equal[M1, M2 Mutability, T1, T2 any](a Address[M1, T1], b Address[M2, T2]) bool {
	return a.Addr() == b.Addr()
}

// Compare orders two addresses by numeric value, returning -1, 0, or +1.
// The order is total: addresses are plain integers underneath, so no pair
// is incomparable.
func Compare[M1, M2 Mutability, T1, T2 any](a Address[M1, T1], b Address[M2, T2]) int {
	return cmp.Compare(a.Addr(), b.Addr())
}
