package types

import "github.com/wippyai/gpu-layout/codec/internal/abi"

type Kind uint8

const (
	KindI32 Kind = iota
	KindU32
	KindF32
	KindVector
	KindMatrix
	KindArray
	KindStruct
)

var kindNames = [...]string{
	KindI32:    "i32",
	KindU32:    "u32",
	KindF32:    "f32",
	KindVector: "vector",
	KindMatrix: "matrix",
	KindArray:  "array",
	KindStruct: "struct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) IsScalar() bool {
	return k <= KindF32
}

// ScalarKind maps a scalar Kind to its abi counterpart.
func (k Kind) ScalarKind() abi.ScalarKind {
	switch k {
	case KindU32:
		return abi.U32
	case KindF32:
		return abi.F32
	default:
		return abi.I32
	}
}
