package wgsl

import "strconv"

// Scalar is the set of 32-bit host-shareable scalar element types.
type Scalar interface {
	~int32 | ~uint32 | ~float32
}

// Float is the set of element types WGSL permits in matrices.
type Float interface {
	~float32
}

// ShapeKind distinguishes vector and matrix containers.
type ShapeKind uint8

const (
	ShapeVector ShapeKind = iota + 1
	ShapeMatrix
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeVector:
		return "vector"
	case ShapeMatrix:
		return "matrix"
	default:
		return "ShapeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Shape describes a container type. Vectors have Cols == 1.
type Shape struct {
	Kind ShapeKind
	Cols int
	Rows int
}

// TypeName renders the WGSL spelling of the shape for the given element
// type name, e.g. "vec3<f32>" or "mat4x2<f32>".
func (s Shape) TypeName(elem string) string {
	switch s.Kind {
	case ShapeVector:
		return "vec" + strconv.Itoa(s.Rows) + "<" + elem + ">"
	case ShapeMatrix:
		return "mat" + strconv.Itoa(s.Cols) + "x" + strconv.Itoa(s.Rows) + "<" + elem + ">"
	default:
		return elem
	}
}

// Shaped is implemented by every container type in this package.
type Shaped interface {
	Shape() Shape
}

// Vec2 is vec2<T>.
type Vec2[T Scalar] [2]T

// Vec3 is vec3<T>.
type Vec3[T Scalar] [3]T

// Vec4 is vec4<T>.
type Vec4[T Scalar] [4]T

func (Vec2[T]) Shape() Shape { return Shape{Kind: ShapeVector, Cols: 1, Rows: 2} }
func (Vec3[T]) Shape() Shape { return Shape{Kind: ShapeVector, Cols: 1, Rows: 3} }
func (Vec4[T]) Shape() Shape { return Shape{Kind: ShapeVector, Cols: 1, Rows: 4} }

// Splat2 returns a Vec2 with every component set to v.
func Splat2[T Scalar](v T) Vec2[T] { return Vec2[T]{v, v} }

// Splat3 returns a Vec3 with every component set to v.
func Splat3[T Scalar](v T) Vec3[T] { return Vec3[T]{v, v, v} }

// Splat4 returns a Vec4 with every component set to v.
func Splat4[T Scalar](v T) Vec4[T] { return Vec4[T]{v, v, v, v} }

// MatCxR types are C columns of R-component vectors.
type (
	Mat2x2[T Float] [2]Vec2[T]
	Mat2x3[T Float] [2]Vec3[T]
	Mat2x4[T Float] [2]Vec4[T]
	Mat3x2[T Float] [3]Vec2[T]
	Mat3x3[T Float] [3]Vec3[T]
	Mat3x4[T Float] [3]Vec4[T]
	Mat4x2[T Float] [4]Vec2[T]
	Mat4x3[T Float] [4]Vec3[T]
	Mat4x4[T Float] [4]Vec4[T]
)

func (Mat2x2[T]) Shape() Shape { return Shape{Kind: ShapeMatrix, Cols: 2, Rows: 2} }
func (Mat2x3[T]) Shape() Shape { return Shape{Kind: ShapeMatrix, Cols: 2, Rows: 3} }
func (Mat2x4[T]) Shape() Shape { return Shape{Kind: ShapeMatrix, Cols: 2, Rows: 4} }
func (Mat3x2[T]) Shape() Shape { return Shape{Kind: ShapeMatrix, Cols: 3, Rows: 2} }
func (Mat3x3[T]) Shape() Shape { return Shape{Kind: ShapeMatrix, Cols: 3, Rows: 3} }
func (Mat3x4[T]) Shape() Shape { return Shape{Kind: ShapeMatrix, Cols: 3, Rows: 4} }
func (Mat4x2[T]) Shape() Shape { return Shape{Kind: ShapeMatrix, Cols: 4, Rows: 2} }
func (Mat4x3[T]) Shape() Shape { return Shape{Kind: ShapeMatrix, Cols: 4, Rows: 3} }
func (Mat4x4[T]) Shape() Shape { return Shape{Kind: ShapeMatrix, Cols: 4, Rows: 4} }
