package types

import (
	"reflect"
)

// CompiledType is a Go type resolved to its WGSL layout in one address space.
//
// Elem is the scalar type of a vector, the column vector of a matrix, or
// the element of an array. Len is the vector component count, matrix column
// count, or array length. Stride is the matrix column stride or the array
// element stride; the packed size of one element is Elem.Size.
type CompiledType struct {
	GoType      reflect.Type
	Elem        *CompiledType
	WGSLName    string
	Fields      []Field
	GoSize      uintptr
	Len         int
	ScalarCount int
	Size        uint32
	Align       uint32
	Stride      uint32
	Kind        Kind
}

// Field is one struct member.
//
// Align is the effective placement alignment, which in the uniform space
// may exceed Type.Align for struct members and for members that follow a
// nested struct.
type Field struct {
	Type     *CompiledType
	Name     string
	GoName   string
	GoOffset uintptr
	Offset   uint32
	Align    uint32
}

// PayloadSize is the dense region size: four bytes per scalar leaf.
func (ct *CompiledType) PayloadSize() uint32 {
	return uint32(ct.ScalarCount) * 4
}

// GoStride returns the Go memory distance between consecutive elements of a
// vector, matrix or array.
func (ct *CompiledType) GoStride() uintptr {
	if ct.Elem == nil {
		return 0
	}
	return ct.Elem.GoSize
}
