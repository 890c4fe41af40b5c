// Package gpulayout converts Go values to and from the byte layout a WGSL
// shader sees in the uniform and storage address spaces.
//
// A shader and its host program agree on struct offsets without ever
// consulting each other at runtime, so the host side has to reproduce the
// shading language's alignment and padding rules exactly. This module does
// that from ordinary Go struct declarations.
//
// # Architecture Overview
//
//	gpulayout/           Root package with AddressSpace and the Memory interface
//	├── wgsl/            Shape-tagged vector and matrix container types
//	├── codec/           Layout encoder, decoder, compiler and layout reports
//	├── executor/        Compute executor interface, round-trip runner, buffer plans
//	│   └── hostexec/    Reference executor backed by wazero linear memory
//	├── shader/          WGSL declarations and copy-out kernels generated from layouts
//	├── shapes/          Example shapes used by tests and the CLI
//	├── internal/wasmbin Memory-only wasm module writer for hostexec
//	├── errors/          Structured error types
//	└── cmd/gpulayout/   Inspector CLI with an interactive mode
//
// # Quick Start
//
//	type Params struct {
//	    Count  int32
//	    Offset wgsl.Vec2[float32]
//	}
//
//	enc := codec.NewEncoder()
//	buf, err := enc.Encode(Params{Count: 1, Offset: wgsl.Vec2[float32]{1, 1}}, gpulayout.Storage)
//	// buf: 01 00 00 00 | 00 00 00 00 | 00 00 80 3f | 00 00 80 3f
//
// Results come back from a compute job one region per field:
//
//	var out Params
//	err = codec.NewDecoder().Decode(regions, nil, true, gpulayout.Storage, &out)
//
// # Address Spaces
//
// Storage follows the plain WGSL alignment table. Uniform additionally
// rounds array strides and nested struct alignment up to 16 bytes.
package gpulayout
