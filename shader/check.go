package shader

import (
	"encoding/binary"

	"github.com/gogpu/naga"
	"github.com/wippyai/gpu-layout/codec"
	"github.com/wippyai/gpu-layout/errors"
)

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic = 0x07230203

// Check compiles WGSL source to SPIR-V.
func Check(src string) ([]byte, error) {
	spirv, err := naga.Compile(src)
	if err != nil {
		return nil, errors.InvalidShader(err)
	}
	if len(spirv) < 4 || binary.LittleEndian.Uint32(spirv) != SPIRVMagic {
		return nil, errors.New(errors.PhaseGenerate, errors.KindInvalidShader).
			Detail("compiler output is not a SPIR-V module (%d bytes)", len(spirv)).
			Build()
	}
	return spirv, nil
}

// Compile generates the kernel for lay and checks it.
func Compile(lay *codec.Layout, op Op) (string, []byte, error) {
	src, err := CopyKernel(lay, op)
	if err != nil {
		return "", nil, err
	}
	spirv, err := Check(src)
	if err != nil {
		return src, nil, err
	}
	return src, spirv, nil
}

// Words converts SPIR-V bytes to little-endian 32-bit words.
func Words(spirv []byte) []uint32 {
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	return words
}
