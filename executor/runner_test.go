package executor

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/codec"
	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/shapes"
	"github.com/wippyai/gpu-layout/wgsl"
)

// splitExecutor answers every job with the regions a copy-out kernel would
// write, computed on the host.
type splitExecutor struct {
	layout   *codec.Layout
	jobs     map[Handle][][]byte
	next     Handle
	released []Handle
	runErr   error
	readErr  error
	mangle   func(regions [][]byte) [][]byte
}

func newSplitExecutor(t *testing.T, lay *codec.Layout) *splitExecutor {
	t.Helper()
	return &splitExecutor{layout: lay, jobs: make(map[Handle][][]byte)}
}

func (s *splitExecutor) RunJob(_ context.Context, input []byte) (Handle, error) {
	if s.runErr != nil {
		return 0, s.runErr
	}
	regions, err := s.layout.Split(input)
	if err != nil {
		return 0, err
	}
	if s.mangle != nil {
		regions = s.mangle(regions)
	}
	s.next++
	s.jobs[s.next] = regions
	return s.next, nil
}

func (s *splitExecutor) ReadRegion(_ context.Context, h Handle, i int) ([]byte, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	regions := s.jobs[h]
	if i >= len(regions) {
		return nil, nil
	}
	return regions[i], nil
}

func (s *splitExecutor) Release(_ context.Context, h Handle) error {
	s.released = append(s.released, h)
	delete(s.jobs, h)
	return nil
}

func TestRunRoundTrip(t *testing.T) {
	c := codec.NewCompiler()
	lay, err := c.Layout(layoutType[shapes.Intermediate](), gpulayout.Storage)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	exec := newSplitExecutor(t, lay)
	r := NewRunnerWithConfig(exec, &Config{Compiler: c})

	in := shapes.Intermediate{A: 3, B: wgsl.Vec3[float32]{1, 2, 3}, C: wgsl.Vec2[int32]{-1, -2}}
	out, err := Run(context.Background(), r, in, gpulayout.Storage)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
	if len(exec.released) != 1 || len(exec.jobs) != 0 {
		t.Errorf("released %v, live %d", exec.released, len(exec.jobs))
	}
}

func TestRunValidatesRegions(t *testing.T) {
	lay, _ := codec.LayoutOf[shapes.Beginner](gpulayout.Storage)
	exec := newSplitExecutor(t, lay)
	exec.mangle = func(regions [][]byte) [][]byte {
		regions[0] = append(regions[0], 0, 0, 0, 0)
		return regions
	}

	_, err := Run(context.Background(), NewRunner(exec), shapes.Beginner{A: 1}, gpulayout.Storage)
	if !stderrors.Is(err, errors.ErrRegionSizeMismatch) {
		t.Fatalf("error = %v, want region size mismatch", err)
	}

	out, err := Run(context.Background(), NewRunnerWithConfig(exec, &Config{SkipValidation: true}), shapes.Beginner{A: 1}, gpulayout.Storage)
	if err != nil {
		t.Fatalf("unvalidated Run: %v", err)
	}
	if out.A != 1 {
		t.Errorf("A = %d, want 1", out.A)
	}
}

func TestRunMissingRegions(t *testing.T) {
	lay, _ := codec.LayoutOf[shapes.Advanced](gpulayout.Storage)
	exec := newSplitExecutor(t, lay)
	exec.mangle = func(regions [][]byte) [][]byte { return regions[:2] }

	// ReadRegion returns nil for the missing tail, which fails size validation.
	_, err := Run(context.Background(), NewRunner(exec), shapes.Advanced{A: 1}, gpulayout.Storage)
	if !stderrors.Is(err, errors.ErrRegionSizeMismatch) {
		t.Fatalf("error = %v, want region size mismatch", err)
	}
}

func TestRunExecutorErrors(t *testing.T) {
	lay, _ := codec.LayoutOf[shapes.Beginner](gpulayout.Storage)

	exec := newSplitExecutor(t, lay)
	exec.runErr = fmt.Errorf("device lost")
	_, err := Run(context.Background(), NewRunner(exec), shapes.Beginner{}, gpulayout.Storage)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseExecute, Kind: errors.KindInvalidData}) {
		t.Errorf("run error = %v", err)
	}
	if err == nil || !stderrors.Is(err, exec.runErr) {
		t.Errorf("cause should be preserved: %v", err)
	}

	exec = newSplitExecutor(t, lay)
	exec.readErr = errors.OutOfBounds(errors.PhaseExecute, nil, 5, 2)
	_, err = Run(context.Background(), NewRunner(exec), shapes.Beginner{}, gpulayout.Storage)
	if err != exec.readErr {
		t.Errorf("structured error should pass through, got %v", err)
	}
	if len(exec.released) != 1 {
		t.Errorf("job should be released after a read failure, released %v", exec.released)
	}
}

func TestRunContextDone(t *testing.T) {
	lay, _ := codec.LayoutOf[shapes.Beginner](gpulayout.Storage)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := newSplitExecutor(t, lay)
	if _, err := Run(ctx, NewRunner(exec), shapes.Beginner{}, gpulayout.Storage); err == nil {
		t.Error("Run should fail on a cancelled context")
	}
	if exec.next != 0 {
		t.Error("no job should start on a cancelled context")
	}
}

func TestRunIntoTypeChecks(t *testing.T) {
	lay, _ := codec.LayoutOf[shapes.Beginner](gpulayout.Storage)
	r := NewRunner(newSplitExecutor(t, lay))
	ctx := context.Background()

	var wrong shapes.Intermediate
	if err := r.RunInto(ctx, shapes.Beginner{}, gpulayout.Storage, &wrong); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseExecute, Kind: errors.KindTypeMismatch}) {
		t.Errorf("type mismatch error = %v", err)
	}
	if err := r.RunInto(ctx, nil, gpulayout.Storage, &wrong); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseExecute, Kind: errors.KindNilPointer}) {
		t.Errorf("nil input error = %v", err)
	}
	var out shapes.Beginner
	if err := r.RunInto(ctx, &shapes.Beginner{A: 4}, gpulayout.Storage, &out); err != nil || out.A != 4 {
		t.Errorf("pointer input: %+v, %v", out, err)
	}
}
