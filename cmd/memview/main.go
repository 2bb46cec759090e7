package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/memcap"
	"github.com/wippyai/memcap/region"
	"github.com/wippyai/memcap/wasmmem"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to wasm module")
		funcName    = flag.String("func", "", "Exported function to call before inspecting (optional)")
		offset      = flag.Uint("offset", 0, "Start offset into linear memory")
		length      = flag.Uint("length", 256, "Number of bytes to dump")
		poke        = flag.String("poke", "", "Write a byte before dumping (offset=value)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: memview -wasm <file.wasm> [-func name] [-offset n] [-length n]")
		fmt.Fprintln(os.Stderr, "       memview -wasm <file.wasm> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		if logger, err := zap.NewDevelopment(); err == nil {
			wasmmem.SetLogger(logger)
			defer func() { _ = logger.Sync() }()
		}
	}

	if *interactive {
		if err := runInteractive(*wasmFile, *funcName); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*wasmFile, *funcName, *poke, uint32(*offset), uint32(*length)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// guest bundles a wazero runtime with the module instantiated in it.
type guest struct {
	rt  wazero.Runtime
	mod api.Module
}

func loadGuest(ctx context.Context, path string) (*guest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)

	// Start functions are suppressed so the module's memory can be
	// inspected in its initial state; use -func to run an export.
	mod, err := rt.InstantiateWithConfig(ctx, data, wazero.NewModuleConfig().WithStartFunctions())
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("instantiate: %w", err)
	}

	return &guest{rt: rt, mod: mod}, nil
}

func (g *guest) close(ctx context.Context) {
	g.rt.Close(ctx)
}

func (g *guest) call(ctx context.Context, name string) ([]uint64, error) {
	fn := g.mod.ExportedFunction(name)
	if fn == nil {
		return nil, fmt.Errorf("function %q not exported", name)
	}
	results, err := fn.Call(ctx)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", name, err)
	}
	return results, nil
}

func run(wasmFile, funcName, poke string, offset, length uint32) error {
	ctx := context.Background()

	g, err := loadGuest(ctx, wasmFile)
	if err != nil {
		return err
	}
	defer g.close(ctx)

	if funcName != "" {
		results, err := g.call(ctx, funcName)
		if err != nil {
			return err
		}
		fmt.Printf("Called %s", funcName)
		if len(results) > 0 {
			fmt.Printf(" -> %v", results)
		}
		fmt.Println()
	}

	mem, err := wasmmem.Attach(g.mod.Memory())
	if err != nil {
		return fmt.Errorf("attach memory: %w", err)
	}
	fmt.Printf("Linear memory: %d bytes\n\n", mem.Size())

	if poke != "" {
		off, val, err := parsePoke(poke)
		if err != nil {
			return err
		}
		if err := region.WriteU8(mem, off, val); err != nil {
			return fmt.Errorf("poke: %w", err)
		}
	}

	// Everything below inspects through a frozen view and cannot write to
	// guest memory.
	view := region.Freeze(mem)
	end := uint64(offset) + uint64(length)
	if end > uint64(view.Size()) {
		end = uint64(view.Size())
	}
	if uint64(offset) >= end {
		return fmt.Errorf("offset %d is beyond memory size %d", offset, view.Size())
	}

	window, err := view.Slice(offset, uint32(end-uint64(offset)))
	if err != nil {
		return err
	}
	fmt.Print(hexdump(window, offset))

	return nil
}

func parsePoke(s string) (offset uint32, value uint8, err error) {
	offStr, valStr, found := strings.Cut(s, "=")
	if !found {
		return 0, 0, fmt.Errorf("invalid -poke %q, want offset=value", s)
	}
	off, err := strconv.ParseUint(offStr, 0, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid -poke offset %q: %w", offStr, err)
	}
	val, err := strconv.ParseUint(valStr, 0, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid -poke value %q: %w", valStr, err)
	}
	return uint32(off), uint8(val), nil
}

// hexdump renders a region in rows of 16 bytes with an ascii gutter. The
// base is the absolute offset of the region's first byte, used for the
// address column.
func hexdump[M memcap.Mutability](r region.Region[M], base uint32) string {
	var b strings.Builder

	for row := uint32(0); row < r.Size(); row += 16 {
		n := r.Size() - row
		if n > 16 {
			n = 16
		}
		data, err := r.Read(row, n)
		if err != nil {
			break
		}

		fmt.Fprintf(&b, "%08x  ", base+row)
		for i := 0; i < 16; i++ {
			if i < len(data) {
				fmt.Fprintf(&b, "%02x ", data[i])
			} else {
				b.WriteString("   ")
			}
			if i == 7 {
				b.WriteByte(' ')
			}
		}

		b.WriteString(" |")
		for _, c := range data {
			if c < 0x20 || c > 0x7e {
				c = '.'
			}
			b.WriteByte(c)
		}
		b.WriteString("|\n")
	}

	return b.String()
}
