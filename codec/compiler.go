package codec

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"

	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/codec/internal/layout"
	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/wgsl"
)

var shapedType = reflect.TypeOf((*wgsl.Shaped)(nil)).Elem()

// Compiler resolves Go struct types to WGSL layouts. Results are cached per
// (type, address space) and the Compiler is safe for concurrent use.
type Compiler struct {
	cache   sync.Map // cacheKey -> *CompiledType
	layouts sync.Map // cacheKey -> *Layout
}

type cacheKey struct {
	goType reflect.Type
	space  gpulayout.AddressSpace
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

var defaultCompiler = NewCompiler()

// Compile resolves goType, which must be a struct or a pointer to one.
func (c *Compiler) Compile(goType reflect.Type, space gpulayout.AddressSpace) (*CompiledType, error) {
	if goType == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Detail("Go type cannot be nil").
			Build()
	}
	if !space.Valid() {
		return nil, errors.InvalidInput(errors.PhaseCompile, "invalid address space "+space.String())
	}

	if goType.Kind() == reflect.Ptr {
		goType = goType.Elem()
	}
	if goType.Kind() != reflect.Struct {
		return nil, errors.TypeMismatch(errors.PhaseCompile, nil, goType.String(), "struct")
	}

	key := cacheKey{goType: goType, space: space}
	if cached, ok := c.cache.Load(key); ok {
		return cached.(*CompiledType), nil
	}

	ct, err := c.compile(layout.NewCalculator(space), goType, nil)
	if err != nil {
		return nil, err
	}

	actual, _ := c.cache.LoadOrStore(key, ct)
	return actual.(*CompiledType), nil
}

func (c *Compiler) compile(calc *layout.Calculator, goType reflect.Type, path []string) (*CompiledType, error) {
	if goType.Kind() == reflect.Array && goType.Implements(shapedType) {
		return c.compileShaped(calc, goType, path)
	}

	switch goType.Kind() {
	case reflect.Int32:
		return c.compileScalar(calc, KindI32, goType), nil
	case reflect.Uint32:
		return c.compileScalar(calc, KindU32, goType), nil
	case reflect.Float32:
		return c.compileScalar(calc, KindF32, goType), nil
	case reflect.Array:
		return c.compileArray(calc, goType, path)
	case reflect.Struct:
		return c.compileStruct(calc, goType, path)
	case reflect.Bool:
		return nil, errors.Unsupported(errors.PhaseCompile, path, goType.String(), "bool is not host-shareable")
	case reflect.Int64, reflect.Uint64, reflect.Float64, reflect.Int, reflect.Uint, reflect.Uintptr:
		return nil, errors.Unsupported(errors.PhaseCompile, path, goType.String(), "only 32-bit scalars are supported")
	case reflect.Int8, reflect.Uint8, reflect.Int16, reflect.Uint16:
		return nil, errors.Unsupported(errors.PhaseCompile, path, goType.String(), "sub-word scalars are not host-shareable")
	default:
		return nil, errors.Unsupported(errors.PhaseCompile, path, goType.String(), "no fixed-size WGSL equivalent for "+goType.Kind().String())
	}
}

func (c *Compiler) compileScalar(calc *layout.Calculator, kind TypeKind, goType reflect.Type) *CompiledType {
	info := calc.Scalar()
	return &CompiledType{
		GoType:      goType,
		GoSize:      goType.Size(),
		WGSLName:    kind.String(),
		ScalarCount: 1,
		Size:        info.Size,
		Align:       info.Align,
		Kind:        kind,
	}
}

func (c *Compiler) compileShaped(calc *layout.Calculator, goType reflect.Type, path []string) (*CompiledType, error) {
	shape := reflect.Zero(goType).Interface().(wgsl.Shaped).Shape()

	switch shape.Kind {
	case wgsl.ShapeVector:
		return c.compileVector(calc, goType, shape, path)
	case wgsl.ShapeMatrix:
		return c.compileMatrix(calc, goType, shape, path)
	default:
		return nil, errors.Unsupported(errors.PhaseCompile, path, goType.String(), "unknown shape "+shape.Kind.String())
	}
}

func (c *Compiler) compileVector(calc *layout.Calculator, goType reflect.Type, shape wgsl.Shape, path []string) (*CompiledType, error) {
	info, ok := calc.Vector(shape.Rows)
	if !ok || goType.Len() != shape.Rows {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), shape.TypeName("T"))
	}

	elem, err := c.compile(calc, goType.Elem(), path)
	if err != nil {
		return nil, err
	}
	if !elem.Kind.IsScalar() {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.Elem().String(), "i32, u32 or f32")
	}

	return &CompiledType{
		GoType:      goType,
		GoSize:      goType.Size(),
		Elem:        elem,
		WGSLName:    shape.TypeName(elem.WGSLName),
		Len:         shape.Rows,
		ScalarCount: shape.Rows,
		Size:        info.Size,
		Align:       info.Align,
		Kind:        KindVector,
	}, nil
}

func (c *Compiler) compileMatrix(calc *layout.Calculator, goType reflect.Type, shape wgsl.Shape, path []string) (*CompiledType, error) {
	info, ok := calc.Matrix(shape.Cols, shape.Rows)
	if !ok || goType.Len() != shape.Cols {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), shape.TypeName("f32"))
	}

	col, err := c.compile(calc, goType.Elem(), path)
	if err != nil {
		return nil, err
	}
	if col.Kind != KindVector || col.Len != shape.Rows {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.Elem().String(), "vec"+strconv.Itoa(shape.Rows)+"<f32>")
	}
	if col.Elem.Kind != KindF32 {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, col.Elem.GoType.String(), "f32")
	}

	return &CompiledType{
		GoType:      goType,
		GoSize:      goType.Size(),
		Elem:        col,
		WGSLName:    shape.TypeName("f32"),
		Len:         shape.Cols,
		ScalarCount: shape.Cols * shape.Rows,
		Size:        info.Size,
		Align:       info.Align,
		Stride:      info.Stride,
		Kind:        KindMatrix,
	}, nil
}

func (c *Compiler) compileArray(calc *layout.Calculator, goType reflect.Type, path []string) (*CompiledType, error) {
	if goType.Len() == 0 {
		return nil, errors.Unsupported(errors.PhaseCompile, path, goType.String(), "zero-length array")
	}

	elemPath := append(append([]string{}, path...), "[elem]")
	elem, err := c.compile(calc, goType.Elem(), elemPath)
	if err != nil {
		return nil, err
	}

	info, ok := calc.Array(layout.Info{Size: elem.Size, Align: elem.Align}, goType.Len())
	if !ok {
		return nil, errors.Overflow(errors.PhaseCompile, path, "array size exceeds layout limit")
	}

	return &CompiledType{
		GoType:      goType,
		GoSize:      goType.Size(),
		Elem:        elem,
		WGSLName:    "array<" + elem.WGSLName + ", " + strconv.Itoa(goType.Len()) + ">",
		Len:         goType.Len(),
		ScalarCount: goType.Len() * elem.ScalarCount,
		Size:        info.Size,
		Align:       info.Align,
		Stride:      info.Stride,
		Kind:        KindArray,
	}, nil
}

func (c *Compiler) compileStruct(calc *layout.Calculator, goType reflect.Type, path []string) (*CompiledType, error) {
	fields := make([]CompiledField, 0, goType.NumField())
	members := make([]layout.Member, 0, goType.NumField())
	seen := make(map[string]bool, goType.NumField())
	scalars := 0

	for i := 0; i < goType.NumField(); i++ {
		goField := goType.Field(i)
		name, ok := fieldName(goField)
		if !ok {
			continue
		}
		if seen[name] {
			return nil, errors.Unsupported(errors.PhaseCompile, path, goType.String(), "duplicate field name "+strconv.Quote(name))
		}
		seen[name] = true

		fieldPath := append(append([]string{}, path...), name)
		fieldType, err := c.compile(calc, goField.Type, fieldPath)
		if err != nil {
			return nil, err
		}

		fields = append(fields, CompiledField{
			Name:     name,
			GoName:   goField.Name,
			GoOffset: goField.Offset,
			Type:     fieldType,
		})
		members = append(members, layout.Member{
			Info:     layout.Info{Size: fieldType.Size, Align: fieldType.Align},
			IsStruct: fieldType.Kind == KindStruct,
		})
		scalars += fieldType.ScalarCount
	}

	info, ok := calc.Struct(members)
	if !ok {
		return nil, errors.Overflow(errors.PhaseCompile, path, "struct size exceeds layout limit")
	}
	for i := range fields {
		fields[i].Offset = info.Offsets[i]
		fields[i].Align = info.Aligns[i]
	}

	return &CompiledType{
		GoType:      goType,
		GoSize:      goType.Size(),
		Fields:      fields,
		WGSLName:    structName(goType),
		ScalarCount: scalars,
		Size:        info.Size,
		Align:       info.Align,
		Kind:        KindStruct,
	}, nil
}

// fieldName resolves the WGSL member name: 1) wgsl:"name" tag, 2) snake_case
// of the Go name. Unexported fields and wgsl:"-" are skipped.
func fieldName(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	if tag, ok := f.Tag.Lookup("wgsl"); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return "", false
		}
		if name != "" {
			return name, true
		}
	}
	return toSnakeCase(f.Name), true
}

// toSnakeCase keeps acronyms together: "OffsetXY" -> "offset_xy".
func toSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
				result.WriteByte('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

func structName(t reflect.Type) string {
	if name := t.Name(); name != "" {
		// Generic instantiations carry brackets WGSL cannot spell.
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		return name
	}
	return "Struct"
}
