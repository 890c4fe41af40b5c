package shader

import (
	"fmt"
	"strings"

	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/codec"
	"github.com/wippyai/gpu-layout/errors"
)

// Op is the per-scalar operation a generated kernel applies.
type Op uint8

const (
	// OpCopy writes every scalar unchanged.
	OpCopy Op = iota
	// OpIncrement adds one: 1.0 to floats, 1 to integers with wrap around.
	OpIncrement
)

func (o Op) String() string {
	switch o {
	case OpCopy:
		return "copy"
	case OpIncrement:
		return "increment"
	default:
		return "unknown"
	}
}

// ParseOp maps a name from String back to an Op.
func ParseOp(name string) (Op, error) {
	switch strings.ToLower(name) {
	case "copy", "":
		return OpCopy, nil
	case "increment", "inc":
		return OpIncrement, nil
	}
	return 0, errors.NotFound(errors.PhaseGenerate, "kernel op", name)
}

// InputName is the variable the input struct is bound to.
const InputName = "src"

// RegionName returns the variable of region i.
func RegionName(i int) string {
	return fmt.Sprintf("region_%d", i)
}

// CopyKernel renders a complete compute shader for lay. Binding 0 holds the
// packed input; bindings 1..n hold one array<u32, N> per region, where
// element k is the bit pattern of the region's k-th scalar after op.
func CopyKernel(lay *codec.Layout, op Op) (string, error) {
	if op > OpIncrement {
		return "", errors.InvalidInput(errors.PhaseGenerate, "unknown kernel op "+op.String())
	}
	g, err := newGenerator(lay)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	g.writeStructs(&b)
	b.WriteByte('\n')

	root := g.names[lay.GoType]
	if lay.Space == gpulayout.Uniform {
		fmt.Fprintf(&b, "@group(0) @binding(0) var<uniform> %s: %s;\n", InputName, root)
	} else {
		fmt.Fprintf(&b, "@group(0) @binding(0) var<storage, read> %s: %s;\n", InputName, root)
	}
	for _, r := range lay.Regions {
		n := len(r.Slots)
		if n == 0 {
			n = 1
		}
		fmt.Fprintf(&b, "@group(0) @binding(%d) var<storage, read_write> %s: array<u32, %d>; // %s\n",
			r.Index+1, RegionName(r.Index), n, r.Path)
	}

	b.WriteString("\n@compute @workgroup_size(1)\nfn main() {\n")
	w := &bodyWriter{b: &b, op: op}
	w.fields(lay.Compiled(), InputName)
	b.WriteString("}\n")

	return b.String(), nil
}

// bodyWriter emits one store per scalar, walking fields in the same order
// the codec assigns regions and slots.
type bodyWriter struct {
	b      *strings.Builder
	op     Op
	region int
	slot   int
}

func (w *bodyWriter) fields(ct *codec.CompiledType, expr string) {
	for i := range ct.Fields {
		f := &ct.Fields[i]
		member := expr + "." + f.Name
		if f.Type.Kind == codec.KindStruct {
			w.fields(f.Type, member)
			continue
		}
		w.slot = 0
		w.leaves(f.Type, member)
		w.region++
	}
}

func (w *bodyWriter) leaves(ct *codec.CompiledType, expr string) {
	switch ct.Kind {
	case codec.KindI32, codec.KindU32, codec.KindF32:
		fmt.Fprintf(w.b, "    %s[%d] = %s;\n", RegionName(w.region), w.slot, w.scalar(ct.Kind, expr))
		w.slot++
	case codec.KindVector, codec.KindMatrix, codec.KindArray:
		for i := 0; i < ct.Len; i++ {
			w.leaves(ct.Elem, fmt.Sprintf("%s[%d]", expr, i))
		}
	case codec.KindStruct:
		for i := range ct.Fields {
			w.leaves(ct.Fields[i].Type, expr+"."+ct.Fields[i].Name)
		}
	}
}

func (w *bodyWriter) scalar(kind codec.TypeKind, expr string) string {
	switch {
	case w.op == OpIncrement && kind == codec.KindF32:
		return "bitcast<u32>(" + expr + " + 1.0)"
	case w.op == OpIncrement && kind == codec.KindI32:
		return "bitcast<u32>(" + expr + " + 1)"
	case w.op == OpIncrement:
		return expr + " + 1u"
	case kind == codec.KindU32:
		return expr
	default:
		return "bitcast<u32>(" + expr + ")"
	}
}
