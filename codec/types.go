package codec

import (
	"github.com/wippyai/gpu-layout/codec/internal/abi"
	"github.com/wippyai/gpu-layout/codec/internal/types"
)

type TypeKind = types.Kind

const (
	KindI32    = types.KindI32
	KindU32    = types.KindU32
	KindF32    = types.KindF32
	KindVector = types.KindVector
	KindMatrix = types.KindMatrix
	KindArray  = types.KindArray
	KindStruct = types.KindStruct
)

type CompiledType = types.CompiledType
type CompiledField = types.Field

// ScalarKind identifies the scalar type of one region slot.
type ScalarKind = abi.ScalarKind

const (
	ScalarI32 = abi.I32
	ScalarU32 = abi.U32
	ScalarF32 = abi.F32
)

// RoundUp rounds n up to the next multiple of align.
func RoundUp(n, align uint32) uint32 {
	return abi.AlignTo(n, align)
}
