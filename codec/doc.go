// Package codec converts Go structs to and from the byte layout WGSL assigns
// to host-shareable structs in the storage and uniform address spaces.
//
// # Overview
//
//	┌────────────────────────────────────────────────────────────────┐
//	│ Go struct → [Encoder] → packed buffer → GPU job                │
//	│ GPU job → per-field regions → [Decoder] → Go struct            │
//	└────────────────────────────────────────────────────────────────┘
//
// # Layout Table
//
//	Type            Size            Align (storage)   Align (uniform)
//	────────────────────────────────────────────────────────────────
//	i32/u32/f32     4               4                 4
//	vec2<T>         8               8                 8
//	vec3<T>         12              16                16
//	vec4<T>         16              16                16
//	matCxR<f32>     C * stride      align(vecR)       align(vecR)
//	array<E, N>     N * stride      align(E)          roundUp(align(E), 16)
//	struct          padded to align max member        max member, structs 16
//
// In the uniform space array strides round up to 16, nested structs start on
// a 16-byte boundary and so does the member that follows one.
//
// # Go Types
//
//	int32, uint32, float32      i32, u32, f32
//	wgsl.Vec2/Vec3/Vec4[T]      vecN<T>
//	wgsl.MatCxR[float32]        matCxR<f32>
//	[N]E                        array<E, N>
//	struct                      struct (exported fields, wgsl:"name" tags)
//
// # Regions
//
// Results return one region per leaf field. Nested struct members are
// expanded in declaration order, so a struct {a u32; c Inner{x, y}} yields
// regions a, c.x, c.y. A region holds the field's scalars densely, four
// bytes each, with no stride padding.
//
// # Key Types
//
//	Compiler  - Resolves and caches Go type layouts
//	Encoder   - Packs a struct value
//	Decoder   - Rebuilds a struct value from regions
//	Layout    - Offsets, regions and region sizes of a type
package codec
