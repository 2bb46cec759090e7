// Package wasmmem attaches memcap regions to wazero linear memory.
//
// WebAssembly linear memory is the motivating case for permission-tracked
// addresses on the host side: the host holds a single writable buffer, but
// most host code inspecting guest state must never write to it. Attach
// produces a writable region over the full memory; freezing it yields a
// view that can be handed to inspection code with the no-write guarantee in
// the type:
//
//	r, err := wasmmem.Attach(mod.Memory())
//	if err != nil { ... }
//	inspect(region.Freeze(r)) // inspect cannot write, by type
//
// Regions alias wazero's backing buffer directly. Any guest call that grows
// memory may reallocate the buffer; re-attach afterwards.
package wasmmem
