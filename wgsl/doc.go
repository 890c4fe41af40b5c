// Package wgsl defines Go container types that carry the semantic shape of
// WGSL vectors and matrices.
//
// A plain Go array [3]float32 and a Vec3[float32] have the same Go memory
// representation but different GPU layouts: the array is array<f32, 3>
// (align 4, or stride 16 in the uniform space) while the vector is
// vec3<f32> (align 16, size 12). The codec distinguishes them by the
// Shape method alone.
//
// Matrices are stored column-major as C column vectors of R rows, matching
// WGSL matCxR<f32>:
//
//	var m wgsl.Mat4x2[float32] // 4 columns of Vec2: m[col][row]
package wgsl
