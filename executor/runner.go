package executor

import (
	"context"
	"reflect"

	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/codec"
	"github.com/wippyai/gpu-layout/errors"
	"go.uber.org/zap"
)

// Config configures a Runner. A nil Config uses defaults.
type Config struct {
	// Compiler is shared by the runner's encoder and decoder. Defaults to a
	// fresh compiler.
	Compiler *codec.Compiler
	// SkipValidation decodes results without checking region counts and
	// sizes.
	SkipValidation bool
}

// Runner performs encode, execute and decode round trips.
type Runner struct {
	exec     Executor
	compiler *codec.Compiler
	enc      *codec.Encoder
	dec      *codec.Decoder
	validate bool
}

func NewRunner(exec Executor) *Runner {
	return NewRunnerWithConfig(exec, nil)
}

func NewRunnerWithConfig(exec Executor, cfg *Config) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}
	c := cfg.Compiler
	if c == nil {
		c = codec.NewCompiler()
	}
	return &Runner{
		exec:     exec,
		compiler: c,
		enc:      codec.NewEncoderWithCompiler(c),
		dec:      codec.NewDecoderWithCompiler(c),
		validate: !cfg.SkipValidation,
	}
}

// Run sends in through the executor and decodes the result as a T.
func Run[T any](ctx context.Context, r *Runner, in T, space gpulayout.AddressSpace) (T, error) {
	var out T
	err := r.RunInto(ctx, &in, space, &out)
	return out, err
}

// RunInto is the untyped form of Run. in is a struct or a pointer to one,
// out a non-nil pointer to the same struct type.
func (r *Runner) RunInto(ctx context.Context, in any, space gpulayout.AddressSpace, out any) error {
	if in == nil || out == nil {
		return errors.NilPointer(errors.PhaseExecute, nil, "nil")
	}
	inType := reflect.TypeOf(in)
	if inType.Kind() == reflect.Ptr {
		inType = inType.Elem()
	}
	outType := reflect.TypeOf(out)
	if outType.Kind() != reflect.Ptr || outType.Elem() != inType {
		return errors.TypeMismatch(errors.PhaseExecute, nil, outType.String(), "*"+inType.String())
	}

	lay, err := r.compiler.Layout(inType, space)
	if err != nil {
		return err
	}

	input, err := r.enc.Encode(in, space)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.PhaseExecute, errors.KindInvalidInput, err, "context done before job")
	}

	h, err := r.exec.RunJob(ctx, input)
	if err != nil {
		return wrapExec(err, "run job")
	}
	if rel, ok := r.exec.(Releaser); ok {
		defer func() {
			if err := rel.Release(context.WithoutCancel(ctx), h); err != nil {
				Logger().Warn("release job", zap.Uint64("handle", uint64(h)), zap.Error(err))
			}
		}()
	}

	regions := make([][]byte, len(lay.Regions))
	for i := range lay.Regions {
		data, err := r.exec.ReadRegion(ctx, h, i)
		if err != nil {
			return wrapExec(err, "read region "+lay.Regions[i].Path)
		}
		regions[i] = data
	}

	Logger().Debug("job complete",
		zap.String("type", lay.TypeName),
		zap.String("space", space.String()),
		zap.Uint64("handle", uint64(h)),
		zap.Int("input", len(input)),
		zap.Int("regions", len(regions)))

	return r.dec.Decode(regions, lay.RegionSizes(), r.validate, space, out)
}

// wrapExec keeps structured errors intact and wraps anything else.
func wrapExec(err error, detail string) error {
	if _, ok := err.(*errors.Error); ok {
		return err
	}
	return errors.Wrap(errors.PhaseExecute, errors.KindInvalidData, err, detail)
}
