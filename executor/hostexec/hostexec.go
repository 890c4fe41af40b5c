// Package hostexec is a reference executor that runs copy-out jobs on the
// host. A memory-only WebAssembly module instantiated in wazero provides the
// linear memory that stands in for device memory; the input buffer and one
// output buffer per region are placed in it exactly as a GPU plan would
// bind them.
package hostexec

import (
	"context"
	"math"
	"strconv"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/wippyai/gpu-layout/codec"
	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/executor"
	"github.com/wippyai/gpu-layout/internal/wasmbin"
	"go.uber.org/zap"
)

const memoryExport = "memory"

// Config configures an Executor. A nil Config uses defaults.
type Config struct {
	// MemoryLimitPages caps device memory in 64KB pages. 0 means the wazero
	// default of 65536 pages.
	MemoryLimitPages uint32
	// OffsetAlignment aligns buffers inside a job arena. 0 means
	// executor.DefaultOffsetAlignment.
	OffsetAlignment uint32
	// Kernel is applied to every scalar. Nil means Identity.
	Kernel Kernel
}

type job struct {
	base uint64
}

// Executor implements executor.Executor and executor.Releaser for one
// layout. It is safe for concurrent use.
type Executor struct {
	runtime wazero.Runtime
	mem     *DeviceMemory
	layout  *codec.Layout
	plan    executor.BufferPlan
	kernel  Kernel
	align   uint32

	mu     sync.Mutex
	jobs   map[executor.Handle]*job
	next   executor.Handle
	top    uint64
	closed bool
}

var (
	_ executor.Executor = (*Executor)(nil)
	_ executor.Releaser = (*Executor)(nil)
)

// New instantiates device memory sized for one job of lay.
func New(ctx context.Context, lay *codec.Layout, cfg *Config) (*Executor, error) {
	if lay == nil {
		return nil, errors.NilPointer(errors.PhaseExecute, nil, "*codec.Layout")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	align := cfg.OffsetAlignment
	if align == 0 {
		align = executor.DefaultOffsetAlignment
	}
	kernel := cfg.Kernel
	if kernel == nil {
		kernel = Identity
	}

	plan := executor.PlanBuffersWithConfig(lay, &executor.PlanConfig{OffsetAlignment: align})
	pages := wasmbin.PagesFor(plan.ArenaSize)
	if pages == 0 {
		pages = 1
	}
	if cfg.MemoryLimitPages > 0 && pages > cfg.MemoryLimitPages {
		return nil, errors.Overflow(errors.PhaseExecute, nil,
			"job arena needs "+strconv.Itoa(int(pages))+" pages, limit is "+strconv.Itoa(int(cfg.MemoryLimitPages)))
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	bin := wasmbin.MemoryModule(memoryExport, wasmbin.Limits{Min: pages, Max: cfg.MemoryLimitPages})
	compiled, err := rt.CompileModule(ctx, bin)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Instantiation(err)
	}
	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Instantiation(err)
	}
	mem := mod.ExportedMemory(memoryExport)
	if mem == nil {
		_ = rt.Close(ctx)
		return nil, errors.NotFound(errors.PhaseExecute, "memory export", memoryExport)
	}

	executor.Logger().Debug("host executor ready",
		zap.String("type", lay.TypeName),
		zap.Uint32("pages", pages),
		zap.Uint64("arena", plan.ArenaSize))

	return &Executor{
		runtime: rt,
		mem:     &DeviceMemory{mem: mem},
		layout:  lay,
		plan:    plan,
		kernel:  kernel,
		align:   align,
		jobs:    make(map[executor.Handle]*job),
	}, nil
}

// Layout returns the layout the executor was built for.
func (e *Executor) Layout() *codec.Layout {
	return e.layout
}

// Plan returns the buffer plan of one job.
func (e *Executor) Plan() executor.BufferPlan {
	return e.plan
}

// Memory exposes device memory.
func (e *Executor) Memory() *DeviceMemory {
	return e.mem
}

// RunJob places input in a fresh job arena and fills every region buffer by
// passing each of the region's scalars through the kernel.
func (e *Executor) RunJob(ctx context.Context, input []byte) (executor.Handle, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.Wrap(errors.PhaseExecute, errors.KindInvalidInput, err, "context done")
	}
	if len(input) != int(e.layout.Size) {
		return 0, errors.InvalidInput(errors.PhaseExecute,
			"input is "+strconv.Itoa(len(input))+" bytes, "+e.layout.TypeName+" needs "+strconv.Itoa(int(e.layout.Size)))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return 0, errors.Closed(errors.PhaseExecute, "host executor")
	}

	base := e.top
	end := base + e.plan.ArenaSize
	if err := e.ensure(end); err != nil {
		return 0, err
	}

	in := uint32(base + e.plan.Input.Offset)
	if err := e.mem.Write(in, input); err != nil {
		return 0, err
	}

	for i, r := range e.layout.Regions {
		out := uint32(base + e.plan.Outputs[i].Offset)
		for j, slot := range r.Slots {
			bits, err := e.mem.ReadU32(in + slot.Offset)
			if err != nil {
				return 0, err
			}
			if err := e.mem.WriteU32(out+uint32(j)*4, e.kernel(slot.Kind, bits)); err != nil {
				return 0, err
			}
		}
	}

	e.next++
	h := e.next
	e.jobs[h] = &job{base: base}
	e.top = uint64(codec.RoundUp(uint32(end), e.align))

	executor.Logger().Debug("job executed",
		zap.Uint64("handle", uint64(h)),
		zap.Uint64("base", base),
		zap.Int("regions", len(e.layout.Regions)))
	return h, nil
}

// ensure grows memory until it holds end bytes.
func (e *Executor) ensure(end uint64) error {
	if end > math.MaxUint32 {
		return errors.Overflow(errors.PhaseExecute, nil, "job arena exceeds 32-bit device memory")
	}
	size := uint64(e.mem.Size())
	if end <= size {
		return nil
	}
	if !e.mem.Grow(wasmbin.PagesFor(end - size)) {
		return errors.Overflow(errors.PhaseExecute, nil, "device memory limit reached; release finished jobs")
	}
	return nil
}

// ReadRegion returns a copy of region fieldIndex of job h.
func (e *Executor) ReadRegion(ctx context.Context, h executor.Handle, fieldIndex int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseExecute, errors.KindInvalidInput, err, "context done")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, errors.Closed(errors.PhaseExecute, "host executor")
	}
	j, ok := e.jobs[h]
	if !ok {
		return nil, errors.NotFound(errors.PhaseExecute, "job", strconv.FormatUint(uint64(h), 10))
	}
	if fieldIndex < 0 || fieldIndex >= len(e.layout.Regions) {
		return nil, errors.OutOfBounds(errors.PhaseExecute, nil, fieldIndex, len(e.layout.Regions))
	}

	r := e.layout.Regions[fieldIndex]
	view, err := e.mem.Read(uint32(j.base+e.plan.Outputs[fieldIndex].Offset), r.Size)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(view))
	copy(out, view)
	return out, nil
}

// Release frees job h. The arena is reused once no job is live.
func (e *Executor) Release(_ context.Context, h executor.Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return errors.Closed(errors.PhaseExecute, "host executor")
	}
	if _, ok := e.jobs[h]; !ok {
		return errors.NotFound(errors.PhaseExecute, "job", strconv.FormatUint(uint64(h), 10))
	}
	delete(e.jobs, h)
	if len(e.jobs) == 0 {
		e.top = 0
	}
	return nil
}

// Live returns the number of unreleased jobs.
func (e *Executor) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.jobs)
}

// Close releases the wazero runtime. Further calls fail with a closed error.
func (e *Executor) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	e.jobs = nil
	return e.runtime.Close(ctx)
}
