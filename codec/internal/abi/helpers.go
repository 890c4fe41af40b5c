package abi

import (
	"math"
	"reflect"
)

func SafeMulU32(a, b uint32) (uint32, bool) {
	if b != 0 && a > math.MaxUint32/b {
		return 0, false
	}
	return a * b, true
}

func SafeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

// AlignTo rounds n up to the next multiple of align. Align 0 is the identity.
// Non power-of-two alignments are accepted.
func AlignTo(n, align uint32) uint32 {
	if align == 0 {
		return n
	}
	if align&(align-1) == 0 {
		return (n + align - 1) &^ (align - 1)
	}
	if r := n % align; r != 0 {
		return n + align - r
	}
	return n
}

// Pad appends zero bytes to buf until its length is a multiple of align.
func Pad(buf []byte, align uint32) []byte {
	target := AlignTo(uint32(len(buf)), align)
	for uint32(len(buf)) < target {
		buf = append(buf, 0)
	}
	return buf
}

// MaxLayoutSize bounds the size of any compiled type.
const MaxLayoutSize = 1 << 30
