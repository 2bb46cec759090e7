// Package memcap provides a non-nil pointer wrapper whose read/write
// permission lives in its static type.
//
// Go, like most languages, has a single pointer family: a *T can always be
// written through, and code that should only read must be trusted to do so.
// This package splits that family by a generic marker type instead of by
// duplicating APIs. An Address[memcap.Writable, T] and an
// Address[memcap.ReadOnly, T] share every read-side operation through one
// generic implementation, while write-side operations only type-check for
// the writable form. No permission information exists at runtime; the
// wrapper is exactly one pointer wide.
//
// # Markers
//
// Three marker shapes exist, and the set is sealed:
//
//	memcap.ReadOnly      read access only
//	memcap.Writable      read and write access
//	memcap.Frozen[M]     M with write access temporarily revoked
//
// Frozen nests to any depth. Freezing is reversible: each Freeze adds one
// layer and each Thaw removes one, and the type checker enforces that Thaw
// is only called on something that was frozen. Demote is the one-way
// variant, and UnsafeAssertWritable is the explicit, caller-guaranteed
// escape hatch back.
//
// # Quick start
//
//	x := 7
//	a := memcap.FromMut(&x)          // Address[Writable, int]
//	f := memcap.Freeze(a)            // Address[Frozen[Writable], int]
//	// memcap.ToMut(f) does not compile: f is frozen
//	b := memcap.Thaw(f)              // Address[Writable, int] again
//	*memcap.ToMut(b) = 8
//
// # Architecture Overview
//
// The module is organized into a small set of packages:
//
//	memcap/          Root package with markers and the Address type
//	├── region/      Bounds-checked, permission-tracked views over raw memory
//	├── wasmmem/     Adapters from wazero linear memory to regions
//	├── errors/      Structured error types
//	└── cmd/memview/ Interactive linear-memory inspector
//
// # Contracts
//
// Addresses never hold nil: fallible construction (New) rejects nil with a
// typed error, and arithmetic that would produce nil panics. Everything
// else is a compile-time guarantee with a matching caller obligation at the
// boundaries - Offset must stay inside the allocation, Cast must respect
// layout, and UnsafeAssertWritable must only restore permission that
// genuinely existed. None of these are runtime-checked; checking them would
// cost exactly the overhead this package exists to avoid.
package memcap
