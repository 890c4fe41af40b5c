package executor

import "context"

// Handle identifies a completed job.
type Handle uint64

// Executor runs compute jobs.
//
// RunJob consumes the packed input and returns once every region is
// readable. ReadRegion returns the bytes of region fieldIndex, in layout
// region order, for a job. Implementations must be safe for concurrent use.
type Executor interface {
	RunJob(ctx context.Context, input []byte) (Handle, error)
	ReadRegion(ctx context.Context, h Handle, fieldIndex int) ([]byte, error)
}

// Releaser is implemented by executors that hold per-job resources.
type Releaser interface {
	Release(ctx context.Context, h Handle) error
}
