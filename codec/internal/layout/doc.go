// Package layout provides WGSL host-shareable layout calculations.
//
// This package computes size, alignment, stride and member offsets for the
// shapes a Go value can map to, under the rules of one address space.
//
// # Layout Rules
//
//   - Scalars (i32, u32, f32): size 4, align 4
//   - vec2: size 8, align 8; vec3: size 12, align 16; vec4: size 16, align 16
//   - matCxR: column stride roundUp(align(vecR), size(vecR)), align(vecR)
//   - array<E, N>: stride roundUp(size(E), align(E)), align(E)
//   - struct: members in order at aligned offsets, size padded to align
//
// The uniform space additionally rounds array alignment and stride up to 16,
// aligns struct-typed members to 16, and starts the member that follows a
// nested struct on a 16-byte boundary.
//
// # Usage
//
//	c := layout.NewCalculator(gpulayout.Uniform)
//	arr, ok := c.Array(c.Scalar(), 2)
//	// arr.Stride == 16, arr.Size == 32
//
// This package is internal to the codec.
package layout
