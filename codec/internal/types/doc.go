// Package types defines the compiled type representation shared by the
// codec compiler, encoder and decoder.
//
// A CompiledType pairs a Go type with its resolved WGSL layout in one
// address space. Fields carry both the Go offset used for unsafe access
// and the packed offset inside the encoded buffer.
//
// This package is internal to the codec.
package types
