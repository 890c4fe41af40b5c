package codec

import (
	"reflect"
	"unsafe"

	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/codec/internal/abi"
	"github.com/wippyai/gpu-layout/errors"
	"go.uber.org/zap"
)

// Encoder produces the packed byte form of a struct value.
type Encoder struct {
	compiler *Compiler
}

func NewEncoder() *Encoder {
	return &Encoder{compiler: NewCompiler()}
}

func NewEncoderWithCompiler(c *Compiler) *Encoder {
	return &Encoder{compiler: c}
}

// Compiler returns the compiler backing this encoder.
func (e *Encoder) Compiler() *Compiler {
	return e.compiler
}

// Encode packs value, a struct or a non-nil pointer to one, under the rules
// of space. Errors only come from compiling the type; once a type compiles
// every value of it encodes.
func (e *Encoder) Encode(value any, space gpulayout.AddressSpace) ([]byte, error) {
	ptr, goType, err := valuePointer(errors.PhaseEncode, value)
	if err != nil {
		return nil, err
	}

	ct, err := e.compiler.Compile(goType, space)
	if err != nil {
		return nil, err
	}

	buf := e.EncodeCompiled(ct, ptr)
	Logger().Debug("encoded value",
		zap.String("type", goType.String()),
		zap.String("space", space.String()),
		zap.Int("size", len(buf)))
	return buf, nil
}

// Encode is the typed form of (*Encoder).Encode.
func Encode[T any](e *Encoder, v T, space gpulayout.AddressSpace) ([]byte, error) {
	return e.Encode(&v, space)
}

// EncodeCompiled packs the value at ptr, which must point to a value of
// ct.GoType.
func (e *Encoder) EncodeCompiled(ct *CompiledType, ptr unsafe.Pointer) []byte {
	buf := make([]byte, 0, ct.Size)
	return appendValue(buf, ct, ptr)
}

func appendValue(buf []byte, ct *CompiledType, ptr unsafe.Pointer) []byte {
	switch ct.Kind {
	case KindI32, KindU32, KindF32:
		return abi.AppendBits(buf, abi.LoadBits(ptr))

	case KindVector:
		for i := 0; i < ct.Len; i++ {
			buf = abi.AppendBits(buf, abi.LoadBits(unsafe.Add(ptr, uintptr(i)*ct.GoStride())))
		}
		return buf

	case KindMatrix, KindArray:
		// Each column or element occupies a full stride.
		for i := 0; i < ct.Len; i++ {
			start := len(buf)
			buf = appendValue(buf, ct.Elem, unsafe.Add(ptr, uintptr(i)*ct.GoStride()))
			buf = padTo(buf, start+int(ct.Stride))
		}
		return buf

	case KindStruct:
		for i := range ct.Fields {
			f := &ct.Fields[i]
			buf = abi.Pad(buf, f.Align)
			buf = appendValue(buf, f.Type, unsafe.Add(ptr, f.GoOffset))
		}
		return abi.Pad(buf, ct.Align)
	}
	return buf
}

func padTo(buf []byte, n int) []byte {
	for len(buf) < n {
		buf = append(buf, 0)
	}
	return buf
}

// valuePointer returns an addressable pointer to the struct inside value.
// Non-pointer values are copied first.
func valuePointer(phase errors.Phase, value any) (unsafe.Pointer, reflect.Type, error) {
	if value == nil {
		return nil, nil, errors.NilPointer(phase, nil, "nil")
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, nil, errors.NilPointer(phase, nil, rv.Type().String())
		}
		return rv.UnsafePointer(), rv.Type().Elem(), nil
	}

	cp := reflect.New(rv.Type())
	cp.Elem().Set(rv)
	return cp.UnsafePointer(), rv.Type(), nil
}
