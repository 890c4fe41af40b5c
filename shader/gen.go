package shader

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/codec"
	"github.com/wippyai/gpu-layout/errors"
)

// generator renders one layout. Struct names are unique per Go type; two Go
// types that share a name get numeric suffixes.
type generator struct {
	space gpulayout.AddressSpace
	names map[reflect.Type]string
	used  map[string]bool
	order []*codec.CompiledType
}

func newGenerator(lay *codec.Layout) (*generator, error) {
	if lay == nil || lay.Compiled() == nil {
		return nil, errors.NilPointer(errors.PhaseGenerate, nil, "*codec.Layout")
	}
	g := &generator{
		space: lay.Space,
		names: make(map[reflect.Type]string),
		used:  make(map[string]bool),
	}
	if err := g.collect(lay.Compiled(), nil); err != nil {
		return nil, err
	}
	return g, nil
}

// collect visits struct types in dependency order and checks every array
// stride is one WGSL would derive on its own.
func (g *generator) collect(ct *codec.CompiledType, path []string) error {
	switch ct.Kind {
	case codec.KindArray:
		stride := codec.RoundUp(ct.Elem.Size, ct.Elem.Align)
		if stride != ct.Stride || naturalAlign(ct.Elem) != ct.Align {
			return errors.New(errors.PhaseGenerate, errors.KindUnsupported).
				Path(path...).
				WGSLType(ct.WGSLName).
				Detail("%s stride %d cannot be expressed in WGSL (element stride %d, align %d)",
					g.space, ct.Stride, stride, naturalAlign(ct.Elem)).
				Build()
		}
		return g.collect(ct.Elem, subPath(path, "[elem]"))

	case codec.KindStruct:
		if _, ok := g.names[ct.GoType]; ok {
			return nil
		}
		if len(ct.Fields) == 0 {
			return errors.Unsupported(errors.PhaseGenerate, path, ct.GoType.String(), "empty struct")
		}
		for i := range ct.Fields {
			f := &ct.Fields[i]
			if err := g.collect(f.Type, subPath(path, f.Name)); err != nil {
				return err
			}
		}
		name := ct.WGSLName
		for n := 2; g.used[name]; n++ {
			name = ct.WGSLName + "_" + strconv.Itoa(n)
		}
		g.used[name] = true
		g.names[ct.GoType] = name
		g.order = append(g.order, ct)
	}
	return nil
}

// naturalAlign is the alignment WGSL derives for ct from the declarations
// this package emits. Struct alignment already includes emitted @align
// attributes.
func naturalAlign(ct *codec.CompiledType) uint32 {
	if ct.Kind == codec.KindArray {
		return naturalAlign(ct.Elem)
	}
	return ct.Align
}

func subPath(path []string, name string) []string {
	return append(path[:len(path):len(path)], name)
}

func (g *generator) typeName(ct *codec.CompiledType) string {
	switch ct.Kind {
	case codec.KindArray:
		return "array<" + g.typeName(ct.Elem) + ", " + strconv.Itoa(ct.Len) + ">"
	case codec.KindStruct:
		return g.names[ct.GoType]
	default:
		return ct.WGSLName
	}
}

func (g *generator) writeStructs(b *strings.Builder) {
	for i, ct := range g.order {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(b, "struct %s {\n", g.names[ct.GoType])
		for j := range ct.Fields {
			f := &ct.Fields[j]
			b.WriteString("    ")
			// Uniform placement may raise a member's alignment past its
			// type's natural one.
			if f.Align != naturalAlign(f.Type) {
				fmt.Fprintf(b, "@align(%d) ", f.Align)
			}
			fmt.Fprintf(b, "%s: %s, // offset %d\n", f.Name, g.typeName(f.Type), f.Offset)
		}
		b.WriteString("}\n")
	}
}

// Declarations renders the WGSL struct declarations for lay, nested structs
// first and the root type last. Each member carries its byte offset within
// its struct as a comment.
func Declarations(lay *codec.Layout) (string, error) {
	g, err := newGenerator(lay)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	g.writeStructs(&b)
	return b.String(), nil
}

// StructName returns the WGSL name Declarations gives the root type.
func StructName(lay *codec.Layout) (string, error) {
	g, err := newGenerator(lay)
	if err != nil {
		return "", err
	}
	return g.names[lay.GoType], nil
}
