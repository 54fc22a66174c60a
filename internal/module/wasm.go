package module

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
)

// HostModuleName is the import module wasm games link against.
const HostModuleName = "arcade"

// Exports every wasm game must provide.
var wasmEntryPoints = []string{"abi_version", "init", "update", "draw"}

// 256 pages of 64KiB.
const wasmMemoryLimitPages = 256

// wasmLibrary owns the runtime a wasm unit was compiled into. Unlike Go
// plugins, closing it frees the unit's code.
type wasmLibrary struct {
	path string
	rt   wazero.Runtime
}

func (l *wasmLibrary) Path() string { return l.path }

func (l *wasmLibrary) Close(ctx context.Context) error {
	return l.rt.Close(ctx)
}

// wasmGame adapts a guest module to registry.Game. Every Init after the first
// instantiates the guest again so a restart starts from a clean memory.
type wasmGame struct {
	ctx      context.Context
	path     string
	rt       wazero.Runtime
	compiled wazero.CompiledModule
	mod      api.Module
	host     registry.Host
	inits    int
	log      *log.Logger
}

func openWasm(ctx context.Context, path string, wasm []byte, logger *log.Logger) (Library, registry.Game, error) {
	cfg := wazero.NewRuntimeConfig().WithMemoryLimitPages(wasmMemoryLimitPages)
	rt := wazero.NewRuntimeWithConfig(ctx, cfg)
	lib := &wasmLibrary{path: path, rt: rt}

	g := &wasmGame{
		ctx:  context.WithoutCancel(ctx),
		path: path,
		rt:   rt,
		log:  logger.With("unit", path),
	}

	fail := func(err error) (Library, registry.Game, error) {
		_ = rt.Close(ctx)
		return nil, nil, err
	}

	if err := g.instantiateHost(ctx); err != nil {
		return fail(fmt.Errorf("host module: %w", err))
	}

	compiled, err := rt.CompileModule(ctx, wasm)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", core.ErrBadFormat, err))
	}
	exports := compiled.ExportedFunctions()
	for _, name := range wasmEntryPoints {
		if _, ok := exports[name]; !ok {
			return fail(fmt.Errorf("%w: %s", core.ErrMissingEntryPoint, name))
		}
	}
	g.compiled = compiled

	if err := g.instantiate(ctx); err != nil {
		return fail(err)
	}
	res, err := g.mod.ExportedFunction("abi_version").Call(ctx)
	if err != nil {
		return fail(fmt.Errorf("abi_version: %w", err))
	}
	if len(res) != 1 || int(api.DecodeI32(res[0])) != core.ABIVersion {
		return fail(fmt.Errorf("%w: runtime has %d", core.ErrABIMismatch, core.ABIVersion))
	}
	return lib, g, nil
}

func (g *wasmGame) instantiate(ctx context.Context) error {
	if g.mod != nil {
		if err := g.mod.Close(ctx); err != nil {
			return fmt.Errorf("close guest: %w", err)
		}
		g.mod = nil
	}
	mod, err := g.rt.InstantiateModule(ctx, g.compiled, wazero.NewModuleConfig().WithName("game"))
	if err != nil {
		return fmt.Errorf("instantiate: %w", err)
	}
	g.mod = mod
	return nil
}

func (g *wasmGame) call(name string) {
	if g.mod == nil {
		return
	}
	if _, err := g.mod.ExportedFunction(name).Call(g.ctx); err != nil {
		// A trapping guest is a broken game; fail as loudly as a native one.
		panic(fmt.Errorf("module: wasm %s: %s: %w", g.path, name, err))
	}
}

func (g *wasmGame) Init(h registry.Host) {
	g.host = h
	if g.inits > 0 {
		if err := g.instantiate(g.ctx); err != nil {
			panic(fmt.Errorf("module: wasm %s: %w", g.path, err))
		}
	}
	g.inits++
	g.log.Debug("guest init", "count", g.inits)
	g.call("init")
}

func (g *wasmGame) Update() { g.call("update") }

func (g *wasmGame) Draw() { g.call("draw") }

// Close frees the guest instance. The runtime itself belongs to the library.
func (g *wasmGame) Close() error {
	if g.mod == nil {
		return nil
	}
	err := g.mod.Close(g.ctx)
	g.mod = nil
	return err
}

func i32(v uint64) uint32 { return uint32(api.DecodeI32(v)) }

func boolI32(b bool) uint64 {
	if b {
		return api.EncodeI32(1)
	}
	return api.EncodeI32(0)
}

// guestString copies n bytes at ptr out of the guest's exported memory.
func guestString(mod api.Module, ptr, n uint32) (string, error) {
	if n == 0 {
		return "", nil
	}
	mem := mod.Memory()
	if mem == nil {
		return "", errors.New("guest exports no memory")
	}
	b, ok := mem.Read(ptr, n)
	if !ok {
		return "", fmt.Errorf("range [%d, %d) outside guest memory of %d bytes", ptr, uint64(ptr)+uint64(n), mem.Size())
	}
	return string(b), nil
}

func (g *wasmGame) instantiateHost(ctx context.Context) error {
	b := g.rt.NewHostModuleBuilder(HostModuleName)
	fn := func(name string, f api.GoModuleFunc, params, results []api.ValueType) {
		b.NewFunctionBuilder().WithGoModuleFunction(f, params, results).Export(name)
	}
	i32s := func(n int) []api.ValueType {
		out := make([]api.ValueType, n)
		for i := range out {
			out[i] = api.ValueTypeI32
		}
		return out
	}

	fn("set_framerate", func(_ context.Context, _ api.Module, stack []uint64) {
		if g.host != nil {
			g.host.SetFramerate(i32(stack[0]))
		}
	}, i32s(1), nil)

	fn("set_cell_size", func(_ context.Context, _ api.Module, stack []uint64) {
		if g.host != nil {
			g.host.SetCellPixelSize(i32(stack[0]))
		}
	}, i32s(1), nil)

	fn("open_window", func(_ context.Context, _ api.Module, stack []uint64) {
		if g.host != nil {
			g.host.OpenWindow(core.Vector2u{X: i32(stack[0]), Y: i32(stack[1])})
		}
	}, i32s(2), nil)

	fn("load_texture", func(_ context.Context, mod api.Module, stack []uint64) {
		if g.host == nil {
			return
		}
		path, err := guestString(mod, i32(stack[1]), i32(stack[2]))
		if err != nil {
			// Surfaces as a trap from the calling export.
			panic(fmt.Errorf("load_texture: %w", err))
		}
		g.host.RegisterTexture(core.TextureID(stack[0]), core.Recipe{
			Path:       path,
			Character:  rune(i32(stack[3])),
			Foreground: core.Color(i32(stack[4])),
			Background: core.Color(i32(stack[5])),
			Width:      i32(stack[6]),
			Height:     i32(stack[7]),
		})
	}, append([]api.ValueType{api.ValueTypeI64}, i32s(7)...), nil)

	fn("draw_sprite", func(_ context.Context, _ api.Module, stack []uint64) {
		if g.host == nil {
			return
		}
		h := g.host.Texture(core.TextureID(stack[0]))
		g.host.DrawSprite(core.Vector2u{X: i32(stack[1]), Y: i32(stack[2])}, h)
	}, append([]api.ValueType{api.ValueTypeI64}, i32s(2)...), nil)

	fn("clear", func(_ context.Context, _ api.Module, stack []uint64) {
		if g.host != nil {
			g.host.Clear(core.Color(i32(stack[0])))
		}
	}, i32s(1), nil)

	fn("button_pressed", func(_ context.Context, _ api.Module, stack []uint64) {
		stack[0] = boolI32(g.host != nil && g.host.IsButtonJustPressed(core.Button(i32(stack[0]))))
	}, i32s(1), i32s(1))

	fn("button_held", func(_ context.Context, _ api.Module, stack []uint64) {
		stack[0] = boolI32(g.host != nil && g.host.IsButtonHeld(core.Button(i32(stack[0]))))
	}, i32s(1), i32s(1))

	fn("record_score", func(_ context.Context, _ api.Module, stack []uint64) {
		if g.host != nil {
			g.host.RecordScore(int(api.DecodeI32(stack[0])))
		}
	}, i32s(1), nil)

	_, err := b.Instantiate(ctx)
	return err
}
