package shapes

import (
	"reflect"
	"sort"
	"strings"

	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/wgsl"
)

// Entry describes one catalogued shape.
type Entry struct {
	Name        string
	Type        reflect.Type
	Space       gpulayout.AddressSpace
	Description string
	// Sample returns a pointer to a fresh value with every scalar non-zero.
	Sample func() any
}

var catalog = []Entry{
	{
		Name:        "Beginner",
		Type:        reflect.TypeFor[Beginner](),
		Space:       gpulayout.Storage,
		Description: "scalar then vec2, padding before the vector",
		Sample: func() any {
			return &Beginner{A: 1, B: wgsl.Vec2[float32]{1, 1}}
		},
	},
	{
		Name:        "Intermediate",
		Type:        reflect.TypeFor[Intermediate](),
		Space:       gpulayout.Storage,
		Description: "vec3 alignment and end-of-struct padding",
		Sample: func() any {
			return &Intermediate{A: 1, B: wgsl.Vec3[float32]{1, 1, 1}, C: wgsl.Vec2[int32]{1, 1}}
		},
	},
	{
		Name:        "AdvancedInner",
		Type:        reflect.TypeFor[AdvancedInner](),
		Space:       gpulayout.Storage,
		Description: "matrix columns and tail padding",
		Sample: func() any {
			return &AdvancedInner{
				A: wgsl.Vec2[int32]{1, 2},
				B: wgsl.Mat4x2[float32]{{1, 2}, {3, 4}, {5, 6}, {7, 8}},
				C: 3,
			}
		},
	},
	{
		Name:        "Advanced",
		Type:        reflect.TypeFor[Advanced](),
		Space:       gpulayout.Storage,
		Description: "array followed by a nested struct",
		Sample: func() any {
			return &Advanced{
				A: 1,
				B: [3]int32{1, 2, 3},
				C: AdvancedInner{
					A: wgsl.Vec2[int32]{4, 5},
					B: wgsl.Mat4x2[float32]{{1, 2}, {3, 4}, {5, 6}, {7, 8}},
					C: 6,
				},
				D: 7,
			}
		},
	},
	{
		Name:        "InUniform",
		Type:        reflect.TypeFor[InUniform](),
		Space:       gpulayout.Uniform,
		Description: "array stride rounded to 16 in the uniform space",
		Sample: func() any {
			return &InUniform{A: 1, B: [2]int32{2, 3}}
		},
	},
	{
		Name:        "InUniformNested",
		Type:        reflect.TypeFor[InUniformNested](),
		Space:       gpulayout.Uniform,
		Description: "nested struct pushes the next member to 16",
		Sample: func() any {
			return &InUniformNested{A: InUniformInner{X: 1, Y: 2}, B: 3, C: [2]int32{4, 5}}
		},
	},
	{
		Name:        "Particle",
		Type:        reflect.TypeFor[Particle](),
		Space:       gpulayout.Storage,
		Description: "scalars packed into vec3 tails",
		Sample: func() any {
			return &Particle{
				Position: wgsl.Vec3[float32]{1, 2, 3},
				Mass:     4,
				Velocity: wgsl.Vec3[float32]{5, 6, 7},
				Age:      8,
			}
		},
	},
	{
		Name:        "Camera",
		Type:        reflect.TypeFor[Camera](),
		Space:       gpulayout.Uniform,
		Description: "uniform block with a mat4x4",
		Sample: func() any {
			return &Camera{
				ViewProj: wgsl.Mat4x4[float32]{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}},
				Eye:      wgsl.Vec3[float32]{0, 1, 5},
				Time:     0.5,
				Viewport: wgsl.Vec2[uint32]{1920, 1080},
			}
		},
	},
}

// Catalog returns every catalogued shape in a stable order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds an entry by case-insensitive name.
func Lookup(name string) (Entry, bool) {
	for _, e := range catalog {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// Names returns the sorted entry names.
func Names() []string {
	names := make([]string, len(catalog))
	for i, e := range catalog {
		names[i] = e.Name
	}
	sort.Strings(names)
	return names
}
