package abi

import (
	"encoding/binary"
	"unsafe"
)

// ScalarKind identifies a 32-bit host-shareable scalar.
type ScalarKind uint8

const (
	I32 ScalarKind = iota
	U32
	F32
)

var scalarNames = [...]string{I32: "i32", U32: "u32", F32: "f32"}

func (k ScalarKind) String() string {
	if int(k) < len(scalarNames) {
		return scalarNames[k]
	}
	return "unknown"
}

// ScalarSize is the byte size of every supported scalar.
const ScalarSize = 4

// LoadBits reads the scalar at ptr as raw bits.
func LoadBits(ptr unsafe.Pointer) uint32 {
	return *(*uint32)(ptr)
}

// StoreBits writes raw bits to the scalar at ptr.
func StoreBits(ptr unsafe.Pointer, bits uint32) {
	*(*uint32)(ptr) = bits
}

// AppendBits appends bits little-endian.
func AppendBits(buf []byte, bits uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, bits)
}

// ReadBits reads little-endian bits at off, returning 0 when buf is short.
func ReadBits(buf []byte, off uint32) uint32 {
	if uint64(off)+ScalarSize > uint64(len(buf)) {
		return 0
	}
	return binary.LittleEndian.Uint32(buf[off:])
}
