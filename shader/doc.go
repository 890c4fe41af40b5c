// Package shader generates WGSL source from codec layouts.
//
// Declarations renders the struct declarations a shader needs to read a
// packed value. CopyKernel adds the bindings and a compute entry point that
// copies every leaf field into its own result buffer, the per-field region
// format the codec decoder expects:
//
//	@group(0) @binding(0) var<storage, read> src: Particle;
//	@group(0) @binding(1) var<storage, read_write> region_0: array<u32, 3>; // position
//	...
//
// Check compiles generated (or hand written) source to SPIR-V through naga,
// which catches layouts WGSL itself cannot express.
package shader
