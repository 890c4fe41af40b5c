// Package errors provides structured error types for the gpu-layout module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go/WGSL type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
//		Path("params", "offset").
//		GoType("int64").
//		WGSLType("i32").
//		Detail("64-bit integers are not host-shareable").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.RegionCountMismatch("Advanced", 5, 6)
//	err := errors.OutOfBounds(errors.PhaseExecute, nil, 10, 5)
//
// All errors implement the standard error interface and support errors.Is/As.
// Region validation failures also match the ErrRegionCountMismatch and
// ErrRegionSizeMismatch sentinels regardless of path or detail.
package errors
