// Package region provides bounds-checked, permission-tracked views over
// raw memory.
//
// A Region pairs a memcap.Address base with a byte length, so every load
// and store is bounds-checked against the window, and the capability rules
// of the address carry over to the whole view: any region can be read, only
// a Region[memcap.Writable] can be written, and Freeze/Thaw move a region
// between those states reversibly.
//
//	r, _ := region.FromBytes(buf)        // Region[Writable]
//	_ = region.WriteU32(r, 0, 0xABCD)    // ok
//	f := region.Freeze(r)                // Region[Frozen[Writable]]
//	v, _ := f.ReadU32(0)                 // loads still work
//	// region.WriteU32(f, ...) does not compile
//	r2 := region.Thaw(f)                 // writable again
//
// Multi-byte loads and stores are little-endian, matching WebAssembly
// linear memory, the primary memory this package is pointed at.
package region
