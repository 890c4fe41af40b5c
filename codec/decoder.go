package codec

import (
	"reflect"
	"unsafe"

	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/codec/internal/abi"
	"github.com/wippyai/gpu-layout/errors"
	"go.uber.org/zap"
)

// Decoder rebuilds struct values from per-field result regions.
type Decoder struct {
	compiler *Compiler
}

func NewDecoder() *Decoder {
	return &Decoder{compiler: NewCompiler()}
}

func NewDecoderWithCompiler(c *Compiler) *Decoder {
	return &Decoder{compiler: c}
}

// Decode fills result, a non-nil pointer to a struct, from regions.
//
// Each region holds the dense payload of one leaf field in declaration
// order, with nested structs expanded in place. A nil expectedSizes derives
// the sizes from the type. With validate set, a short region list or any
// size mismatch fails before result is touched. Without it, missing or
// short regions leave the affected scalars zero.
func (d *Decoder) Decode(regions [][]byte, expectedSizes []uint32, validate bool, space gpulayout.AddressSpace, result any) error {
	if result == nil {
		return errors.NilPointer(errors.PhaseDecode, nil, "nil")
	}
	rv := reflect.ValueOf(result)
	if rv.Kind() != reflect.Ptr {
		return errors.TypeMismatch(errors.PhaseDecode, nil, rv.Type().String(), "pointer to struct")
	}
	if rv.IsNil() {
		return errors.NilPointer(errors.PhaseDecode, nil, rv.Type().String())
	}

	lay, err := d.compiler.Layout(rv.Type().Elem(), space)
	if err != nil {
		return err
	}

	if expectedSizes == nil {
		expectedSizes = lay.RegionSizes()
	}
	if validate {
		if err := validateRegions(regions, expectedSizes, lay.TypeName, lay.Regions); err != nil {
			return err
		}
	}

	next := 0
	decodeStruct(lay.compiled, rv.UnsafePointer(), regions, &next)

	Logger().Debug("decoded value",
		zap.String("type", lay.TypeName),
		zap.String("space", space.String()),
		zap.Int("regions", len(regions)),
		zap.Bool("validated", validate))
	return nil
}

// Decode is the typed form of (*Decoder).Decode.
func Decode[T any](d *Decoder, regions [][]byte, expectedSizes []uint32, validate bool, space gpulayout.AddressSpace) (T, error) {
	var out T
	err := d.Decode(regions, expectedSizes, validate, space, &out)
	return out, err
}

// Validate checks the region count and every region length against
// expectedSizes. Extra regions are logged and ignored.
func (d *Decoder) Validate(regions [][]byte, expectedSizes []uint32, typeName string) error {
	return validateRegions(regions, expectedSizes, typeName, nil)
}

func validateRegions(regions [][]byte, expectedSizes []uint32, typeName string, described []Region) error {
	if len(regions) < len(expectedSizes) {
		return errors.RegionCountMismatch(typeName, len(regions), len(expectedSizes))
	}
	if len(regions) > len(expectedSizes) {
		Logger().Warn("ignoring extra regions",
			zap.String("type", typeName),
			zap.Int("got", len(regions)),
			zap.Int("want", len(expectedSizes)))
	}

	for i, want := range expectedSizes {
		if got := len(regions[i]); got != int(want) {
			var path []string
			if i < len(described) {
				path = []string{described[i].Path}
			}
			return errors.RegionSizeMismatch(typeName, path, i, got, want)
		}
	}
	return nil
}

func decodeStruct(ct *CompiledType, ptr unsafe.Pointer, regions [][]byte, next *int) {
	for i := range ct.Fields {
		f := &ct.Fields[i]
		fieldPtr := unsafe.Add(ptr, f.GoOffset)

		if f.Type.Kind == KindStruct {
			decodeStruct(f.Type, fieldPtr, regions, next)
			continue
		}

		var data []byte
		if *next < len(regions) {
			data = regions[*next]
		}
		*next++

		off := uint32(0)
		storeLeaves(f.Type, fieldPtr, data, &off)
	}
}

// storeLeaves writes the scalars of ct from dense data, advancing off by
// four bytes per scalar.
func storeLeaves(ct *CompiledType, ptr unsafe.Pointer, data []byte, off *uint32) {
	switch ct.Kind {
	case KindI32, KindU32, KindF32:
		abi.StoreBits(ptr, abi.ReadBits(data, *off))
		*off += abi.ScalarSize

	case KindVector, KindMatrix, KindArray:
		for i := 0; i < ct.Len; i++ {
			storeLeaves(ct.Elem, unsafe.Add(ptr, uintptr(i)*ct.GoStride()), data, off)
		}

	case KindStruct:
		for i := range ct.Fields {
			f := &ct.Fields[i]
			storeLeaves(f.Type, unsafe.Add(ptr, f.GoOffset), data, off)
		}
	}
}
