package layout

import (
	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/codec/internal/abi"
)

// UniformAlign is the 16-byte boundary the uniform space imposes on array
// strides and nested structs.
const UniformAlign = 16

// Info describes the layout of one type. Stride is set for arrays (element
// stride) and matrices (column stride).
type Info struct {
	Size   uint32
	Align  uint32
	Stride uint32
}

// Member is one struct member handed to Struct.
type Member struct {
	Info
	IsStruct bool
}

// StructInfo is a placed struct. Offsets and Aligns are indexed like the
// members passed in; Aligns holds the effective placement alignment.
type StructInfo struct {
	Info
	Offsets []uint32
	Aligns  []uint32
}

type Calculator struct {
	space gpulayout.AddressSpace
}

func NewCalculator(space gpulayout.AddressSpace) *Calculator {
	return &Calculator{space: space}
}

func (c *Calculator) Space() gpulayout.AddressSpace {
	return c.space
}

func (c *Calculator) uniform() bool {
	return c.space == gpulayout.Uniform
}

func (c *Calculator) Scalar() Info {
	return Info{Size: abi.ScalarSize, Align: abi.ScalarSize}
}

// Vector returns the layout of vecN. N must be 2, 3 or 4.
func (c *Calculator) Vector(n int) (Info, bool) {
	switch n {
	case 2:
		return Info{Size: 8, Align: 8}, true
	case 3:
		return Info{Size: 12, Align: 16}, true
	case 4:
		return Info{Size: 16, Align: 16}, true
	default:
		return Info{}, false
	}
}

// Matrix returns the layout of matCxR, stored as C columns of vecR.
func (c *Calculator) Matrix(cols, rows int) (Info, bool) {
	if cols < 2 || cols > 4 {
		return Info{}, false
	}
	col, ok := c.Vector(rows)
	if !ok {
		return Info{}, false
	}
	stride := abi.AlignTo(col.Size, col.Align)
	return Info{
		Size:   uint32(cols) * stride,
		Align:  col.Align,
		Stride: stride,
	}, true
}

// Array returns the layout of array<E, n>. It reports false for n <= 0 and
// on size overflow.
func (c *Calculator) Array(elem Info, n int) (Info, bool) {
	if n <= 0 || elem.Align == 0 {
		return Info{}, false
	}

	align := elem.Align
	stride := abi.AlignTo(elem.Size, elem.Align)
	if c.uniform() {
		align = abi.AlignTo(align, UniformAlign)
		stride = abi.AlignTo(stride, UniformAlign)
	}

	size, ok := abi.SafeMulU32(stride, uint32(n))
	if !ok || size > abi.MaxLayoutSize {
		return Info{}, false
	}

	return Info{Size: size, Align: align, Stride: stride}, true
}

// Struct places members in declaration order. It reports false on size
// overflow.
func (c *Calculator) Struct(members []Member) (StructInfo, bool) {
	out := StructInfo{
		Info:    Info{Size: 0, Align: 1},
		Offsets: make([]uint32, len(members)),
		Aligns:  make([]uint32, len(members)),
	}

	cursor := uint32(0)
	afterStruct := false

	for i, m := range members {
		align := m.Align
		if align == 0 {
			align = 1
		}
		if c.uniform() {
			if m.IsStruct {
				align = abi.AlignTo(align, UniformAlign)
			}
			if afterStruct && align < UniformAlign {
				align = UniformAlign
			}
		}

		offset := abi.AlignTo(cursor, align)
		end, ok := abi.SafeAddU32(offset, m.Size)
		if !ok || end > abi.MaxLayoutSize {
			return StructInfo{}, false
		}

		out.Offsets[i] = offset
		out.Aligns[i] = align
		if align > out.Align {
			out.Align = align
		}

		cursor = end
		afterStruct = m.IsStruct
	}

	out.Size = abi.AlignTo(cursor, out.Align)
	return out, true
}
