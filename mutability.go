package memcap

// Mutability is the constraint satisfied by the permission markers in this
// package: ReadOnly, Writable, and Frozen nesting over either to any depth.
// The set is closed; the unexported method keeps outside types from
// implementing it, so code that reasons over markers may assume these three
// shapes are the only ones.
//
// Markers carry no state. The zero value of a marker is the marker, and all
// of its methods work on the zero value.
type Mutability interface {
	comparable
	sealed()

	// Render returns the marker's diagnostic tag, "read-only" or
	// "writable". Frozen layers inherit the tag of the marker they wrap.
	Render() string

	// ContainsWritable reports whether write permission exists beneath any
	// Frozen layers. Freezing hides write access; it does not erase it.
	ContainsWritable() bool

	// Depth returns the number of Frozen layers wrapping the base marker.
	Depth() int
}

// ReadOnly marks an address whose pointee must not be written.
type ReadOnly struct{}

// Writable marks an address whose pointee may be written.
type Writable struct{}

// Frozen wraps another marker, revoking write access until the wrapped
// marker is recovered with Thaw. Frozen markers nest: freezing a
// Frozen[Writable] yields a Frozen[Frozen[Writable]], and each Thaw removes
// exactly one layer.
type Frozen[M Mutability] struct {
	inner M
}

// Self returns the canonical instance of a marker type.
func Self[M Mutability]() M {
	var m M
	return m
}

func (ReadOnly) sealed()  {}
func (Writable) sealed()  {}
func (Frozen[M]) sealed() {}

// Render returns "read-only".
func (ReadOnly) Render() string { return "read-only" }

// Render returns "writable".
func (Writable) Render() string { return "writable" }

// Render returns the tag of the wrapped marker.
func (Frozen[M]) Render() string { return Self[M]().Render() }

// ContainsWritable returns false.
func (ReadOnly) ContainsWritable() bool { return false }

// ContainsWritable returns true.
func (Writable) ContainsWritable() bool { return true }

// ContainsWritable reports whether the wrapped marker ultimately carries
// write permission.
func (Frozen[M]) ContainsWritable() bool { return Self[M]().ContainsWritable() }

// Depth returns 0.
func (ReadOnly) Depth() int { return 0 }

// Depth returns 0.
func (Writable) Depth() int { return 0 }

// Depth returns one more than the wrapped marker's depth.
func (Frozen[M]) Depth() int { return 1 + Self[M]().Depth() }

// FreezeMarker wraps any marker in one Frozen layer. A free function
// rather than a method: a method would name Frozen[Frozen[M]] inside
// Frozen[M]'s own method set, which the compiler rejects as an
// instantiation cycle, while a function instantiates lazily per call site
// and nests to any depth.
func FreezeMarker[M Mutability](m M) Frozen[M] { return Frozen[M]{inner: m} }

// Thaw removes the outermost Frozen layer, restoring the wrapped marker.
// Only frozen markers have this method; thawing a marker that was never
// frozen does not type-check.
func (m Frozen[M]) Thaw() M { return m.inner }
