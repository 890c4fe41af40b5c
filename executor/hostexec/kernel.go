package hostexec

import (
	"math"

	"github.com/wippyai/gpu-layout/codec"
)

// Kernel transforms one scalar on its way from the input buffer to its
// region, like the body of a per-field copy-out shader.
type Kernel func(kind codec.ScalarKind, bits uint32) uint32

// Identity copies every scalar unchanged.
func Identity(_ codec.ScalarKind, bits uint32) uint32 {
	return bits
}

// Increment adds one to every scalar. Integers wrap; floats add 1.0.
func Increment(kind codec.ScalarKind, bits uint32) uint32 {
	if kind == codec.ScalarF32 {
		return math.Float32bits(math.Float32frombits(bits) + 1)
	}
	return bits + 1
}
