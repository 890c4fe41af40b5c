package codec

import (
	"fmt"
	"reflect"
	"strings"

	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/codec/internal/abi"
	"github.com/wippyai/gpu-layout/errors"
)

// Layout reports where every member of a struct lives in the packed buffer
// and how its results come back as regions.
type Layout struct {
	GoType   reflect.Type
	TypeName string
	Space    gpulayout.AddressSpace
	Size     uint32
	Align    uint32
	Fields   []FieldLayout
	Regions  []Region

	compiled *CompiledType
}

// FieldLayout describes one member. Nested struct members follow their
// parent with Depth increased by one; Offset is always absolute.
type FieldLayout struct {
	Path     string
	Name     string
	WGSLType string
	Offset   uint32
	Size     uint32
	Align    uint32
	Stride   uint32
	Depth    int
	IsStruct bool
}

// Region is one per-field result buffer. Slots lists, in payload order, the
// packed offset and scalar kind of every scalar the region carries.
type Region struct {
	Index    int
	Path     string
	WGSLType string
	Size     uint32
	Slots    []Slot
}

// Slot is one scalar leaf of a region.
type Slot struct {
	Offset uint32
	Kind   ScalarKind
}

// Layout compiles goType and builds its layout report.
func (c *Compiler) Layout(goType reflect.Type, space gpulayout.AddressSpace) (*Layout, error) {
	ct, err := c.Compile(goType, space)
	if err != nil {
		return nil, err
	}

	key := cacheKey{goType: ct.GoType, space: space}
	if cached, ok := c.layouts.Load(key); ok {
		return cached.(*Layout), nil
	}

	l := &Layout{
		GoType:   ct.GoType,
		TypeName: ct.GoType.String(),
		Space:    space,
		Size:     ct.Size,
		Align:    ct.Align,
		compiled: ct,
	}
	l.walk(ct, 0, "", 0)

	actual, _ := c.layouts.LoadOrStore(key, l)
	return actual.(*Layout), nil
}

// LayoutOf returns the layout of T using a shared compiler.
func LayoutOf[T any](space gpulayout.AddressSpace) (*Layout, error) {
	return defaultCompiler.Layout(reflect.TypeFor[T](), space)
}

// Compiled returns the compiled type the layout was built from.
func (l *Layout) Compiled() *CompiledType {
	return l.compiled
}

func (l *Layout) walk(ct *CompiledType, base uint32, prefix string, depth int) {
	for i := range ct.Fields {
		f := &ct.Fields[i]
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}

		l.Fields = append(l.Fields, FieldLayout{
			Path:     path,
			Name:     f.Name,
			WGSLType: f.Type.WGSLName,
			Offset:   base + f.Offset,
			Size:     f.Type.Size,
			Align:    f.Align,
			Stride:   f.Type.Stride,
			Depth:    depth,
			IsStruct: f.Type.Kind == KindStruct,
		})

		if f.Type.Kind == KindStruct {
			l.walk(f.Type, base+f.Offset, path, depth+1)
			continue
		}

		r := Region{
			Index:    len(l.Regions),
			Path:     path,
			WGSLType: f.Type.WGSLName,
		}
		r.Slots = appendSlots(r.Slots, f.Type, base+f.Offset)
		r.Size = uint32(len(r.Slots)) * abi.ScalarSize
		l.Regions = append(l.Regions, r)
	}
}

func appendSlots(slots []Slot, ct *CompiledType, off uint32) []Slot {
	switch ct.Kind {
	case KindI32, KindU32, KindF32:
		return append(slots, Slot{Offset: off, Kind: ct.Kind.ScalarKind()})
	case KindVector:
		for i := 0; i < ct.Len; i++ {
			slots = appendSlots(slots, ct.Elem, off+uint32(i)*abi.ScalarSize)
		}
	case KindMatrix, KindArray:
		for i := 0; i < ct.Len; i++ {
			slots = appendSlots(slots, ct.Elem, off+uint32(i)*ct.Stride)
		}
	case KindStruct:
		for i := range ct.Fields {
			slots = appendSlots(slots, ct.Fields[i].Type, off+ct.Fields[i].Offset)
		}
	}
	return slots
}

// RegionSizes returns the expected byte size of every region, in order.
func (l *Layout) RegionSizes() []uint32 {
	sizes := make([]uint32, len(l.Regions))
	for i, r := range l.Regions {
		sizes[i] = r.Size
	}
	return sizes
}

// LargestRegion returns the size of the biggest region, or 0.
func (l *Layout) LargestRegion() uint32 {
	var largest uint32
	for _, r := range l.Regions {
		if r.Size > largest {
			largest = r.Size
		}
	}
	return largest
}

// Field looks up a member by its dotted path.
func (l *Layout) Field(path string) (FieldLayout, bool) {
	for _, f := range l.Fields {
		if f.Path == path {
			return f, true
		}
	}
	return FieldLayout{}, false
}

// Split extracts every region's dense payload from a packed buffer, the
// same bytes a per-field copy-out kernel writes.
func (l *Layout) Split(encoded []byte) ([][]byte, error) {
	if uint32(len(encoded)) != l.Size {
		return nil, errors.InvalidInput(errors.PhaseDecode,
			fmt.Sprintf("packed %s is %d bytes, expected %d", l.TypeName, len(encoded), l.Size))
	}

	regions := make([][]byte, len(l.Regions))
	for i, r := range l.Regions {
		out := make([]byte, 0, r.Size)
		for _, s := range r.Slots {
			out = append(out, encoded[s.Offset:s.Offset+abi.ScalarSize]...)
		}
		regions[i] = out
	}
	return regions, nil
}

// String renders a compact offset table.
func (l *Layout) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) size=%d align=%d\n", l.TypeName, l.Space, l.Size, l.Align)
	for _, f := range l.Fields {
		fmt.Fprintf(&b, "%s%-*s %-20s offset=%-4d size=%-4d align=%d",
			strings.Repeat("  ", f.Depth+1), 12-2*f.Depth, f.Name, f.WGSLType, f.Offset, f.Size, f.Align)
		if f.Stride != 0 {
			fmt.Fprintf(&b, " stride=%d", f.Stride)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
