// Package executor connects the layout codec to whatever runs the compute
// job.
//
// An Executor accepts a packed input buffer and exposes the job's results as
// one region per leaf field, the buffers a GPU copy-out kernel writes. The
// Runner drives a full round trip:
//
//	encode → RunJob → ReadRegion for every region → validated decode
//
// Decoding starts only after RunJob returns, so an executor must not return
// a handle before its results are complete.
//
// PlanBuffers derives the GPU buffers and bind group layout a real device
// executor would create for a layout. The hostexec subpackage provides a
// reference executor that needs no GPU.
package executor
