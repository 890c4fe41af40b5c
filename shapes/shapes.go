// Package shapes holds example structs that exercise every layout rule, and
// a catalogue the CLI and tests iterate over.
package shapes

import "github.com/wippyai/gpu-layout/wgsl"

// Beginner needs four bytes of padding before B.
type Beginner struct {
	A int32
	B wgsl.Vec2[float32]
}

// Intermediate places B at 16 and pads the struct to its 16-byte alignment.
type Intermediate struct {
	A int32
	B wgsl.Vec3[float32]
	C wgsl.Vec2[int32]
}

// AdvancedInner ends on a scalar, so its size needs tail padding.
type AdvancedInner struct {
	A wgsl.Vec2[int32]
	B wgsl.Mat4x2[float32]
	C int32
}

// Advanced nests AdvancedInner after a plain array.
type Advanced struct {
	A uint32
	B [3]int32
	C AdvancedInner
	D int32
}

// InUniform is meant for the uniform space, where B gets a 16-byte stride.
type InUniform struct {
	A int32
	B [2]int32
}

// InUniformInner is nested inside InUniformNested.
type InUniformInner struct {
	X int32
	Y float32
}

// InUniformNested places a struct first, forcing B onto a 16-byte boundary
// in the uniform space.
type InUniformNested struct {
	A InUniformInner
	B int32
	C [2]int32
}

// Particle packs a scalar into the tail of each vec3.
type Particle struct {
	Position wgsl.Vec3[float32]
	Mass     float32
	Velocity wgsl.Vec3[float32]
	Age      float32
}

// Camera is a typical uniform block.
type Camera struct {
	ViewProj wgsl.Mat4x4[float32]
	Eye      wgsl.Vec3[float32]
	Time     float32
	Viewport wgsl.Vec2[uint32]
}
