package hostexec

import (
	"github.com/tetratelabs/wazero/api"
	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/errors"
)

// DeviceMemory wraps wazero linear memory to implement gpulayout.Memory.
type DeviceMemory struct {
	mem api.Memory
}

var (
	_ gpulayout.Memory      = (*DeviceMemory)(nil)
	_ gpulayout.MemorySizer = (*DeviceMemory)(nil)
)

// Read returns a view into linear memory. The view is invalidated by Grow.
func (m *DeviceMemory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, outOfBounds("read", offset, length)
	}
	return data, nil
}

func (m *DeviceMemory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return outOfBounds("write", offset, uint32(len(data)))
	}
	return nil
}

func (m *DeviceMemory) ReadU32(offset uint32) (uint32, error) {
	val, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, outOfBounds("read", offset, 4)
	}
	return val, nil
}

func (m *DeviceMemory) WriteU32(offset uint32, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return outOfBounds("write", offset, 4)
	}
	return nil
}

// Size returns the memory size in bytes.
func (m *DeviceMemory) Size() uint32 {
	return m.mem.Size()
}

// Grow adds pages, reporting false when the memory limit is reached.
func (m *DeviceMemory) Grow(pages uint32) bool {
	_, ok := m.mem.Grow(pages)
	return ok
}

func outOfBounds(op string, offset, length uint32) error {
	return errors.New(errors.PhaseExecute, errors.KindOutOfBounds).
		Detail("%s out of bounds: offset=%d, length=%d", op, offset, length).
		Build()
}
