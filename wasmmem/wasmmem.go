package wasmmem

import (
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/memcap"
	"github.com/wippyai/memcap/errors"
	"github.com/wippyai/memcap/region"
)

// Attach views the whole of a module's linear memory as a writable region.
//
// The region aliases the memory's backing buffer. Growing the memory may
// reallocate that buffer and invalidate the region, so re-attach after any
// guest call that can grow memory. A nil mem (module without an exported
// memory) yields a not-found error.
func Attach(mem api.Memory) (region.Region[memcap.Writable], error) {
	if mem == nil {
		return region.Region[memcap.Writable]{}, errors.NotFound("linear memory")
	}

	size := mem.Size()
	buf, ok := mem.Read(0, size)
	if !ok {
		return region.Region[memcap.Writable]{}, errors.OutOfBounds(0, size, size)
	}

	r, err := region.FromBytes(buf)
	if err != nil {
		return region.Region[memcap.Writable]{}, errors.Wrap(errors.KindNotFound, err, "attach linear memory")
	}

	Logger().Debug("attached linear memory", zap.Uint32("size", size))
	return r, nil
}

// View builds a region over [offset, offset+length) of a module's linear
// memory. Same aliasing caveat as Attach.
func View(mem api.Memory, offset, length uint32) (region.Region[memcap.Writable], error) {
	r, err := Attach(mem)
	if err != nil {
		return region.Region[memcap.Writable]{}, err
	}
	return r.Slice(offset, length)
}
