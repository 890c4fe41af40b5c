package codec

import (
	"bytes"
	stderrors "errors"
	"testing"

	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/shapes"
	"github.com/wippyai/gpu-layout/wgsl"
)

func TestEncodeBeginnerStorage(t *testing.T) {
	enc := NewEncoder()
	got, err := enc.Encode(shapes.Beginner{A: 1, B: wgsl.Vec2[float32]{1, 1}}, gpulayout.Storage)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := []byte{
		0x01, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x80, 0x3F,
		0x00, 0x00, 0x80, 0x3F,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode = % x, want % x", got, want)
	}
}

func TestEncodeIntermediateStorage(t *testing.T) {
	lay, err := LayoutOf[shapes.Intermediate](gpulayout.Storage)
	if err != nil {
		t.Fatalf("LayoutOf: %v", err)
	}

	assertOffsets(t, lay, map[string]uint32{"a": 0, "b": 16, "c": 32})
	if lay.Size != 48 || lay.Align != 16 {
		t.Errorf("size/align = %d/%d, want 48/16", lay.Size, lay.Align)
	}

	buf, err := Encode(NewEncoder(), shapes.Intermediate{
		A: 1,
		B: wgsl.Vec3[float32]{1, 1, 1},
		C: wgsl.Vec2[int32]{1, 1},
	}, gpulayout.Storage)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(buf) != 48 {
		t.Fatalf("len = %d, want 48", len(buf))
	}
	// c starts after four bytes of padding that follow the vec3.
	if !bytes.Equal(buf[28:32], []byte{0, 0, 0, 0}) {
		t.Errorf("padding at 28 = % x", buf[28:32])
	}
	if !bytes.Equal(buf[32:40], []byte{1, 0, 0, 0, 1, 0, 0, 0}) {
		t.Errorf("c = % x", buf[32:40])
	}
}

func TestEncodeNestedUniform(t *testing.T) {
	v := shapes.InUniformNested{A: shapes.InUniformInner{X: 1, Y: 2}, B: 3, C: [2]int32{4, 5}}
	buf, err := NewEncoder().Encode(&v, gpulayout.Uniform)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	lay, _ := LayoutOf[shapes.InUniformNested](gpulayout.Uniform)
	assertOffsets(t, lay, map[string]uint32{"a": 0, "a.x": 0, "a.y": 4, "b": 16, "c": 32})

	c, _ := lay.Field("c")
	if c.Stride != 16 {
		t.Errorf("c stride = %d, want 16", c.Stride)
	}
	if len(buf)%16 != 0 {
		t.Errorf("len = %d, want multiple of 16", len(buf))
	}
	if len(buf) != 64 {
		t.Errorf("len = %d, want 64", len(buf))
	}

	if got := buf[16]; got != 3 {
		t.Errorf("b byte = %d, want 3", got)
	}
	if got := buf[32]; got != 4 {
		t.Errorf("c[0] byte = %d, want 4", got)
	}
	if got := buf[48]; got != 5 {
		t.Errorf("c[1] byte = %d, want 5", got)
	}
	for i := 36; i < 48; i++ {
		if buf[i] != 0 {
			t.Errorf("stride padding byte %d = %#x", i, buf[i])
		}
	}
}

func TestDecodeRegionCount(t *testing.T) {
	dec := NewDecoder()
	regions := [][]byte{
		{1, 0, 0, 0},
		make([]byte, 12),
	}

	var out shapes.Intermediate
	err := dec.Decode(regions, nil, true, gpulayout.Storage, &out)
	if !stderrors.Is(err, errors.ErrRegionCountMismatch) {
		t.Fatalf("validated Decode error = %v, want region count mismatch", err)
	}

	out = shapes.Intermediate{}
	if err := dec.Decode(regions, nil, false, gpulayout.Storage, &out); err != nil {
		t.Fatalf("unvalidated Decode: %v", err)
	}
	if out.A != 1 {
		t.Errorf("A = %d, want 1", out.A)
	}
	if out.C != (wgsl.Vec2[int32]{}) {
		t.Errorf("missing field C = %v, want zero", out.C)
	}
}

func TestDecodeRegionSize(t *testing.T) {
	regions := [][]byte{
		make([]byte, 8),
		make([]byte, 8),
	}

	var out shapes.Beginner
	err := NewDecoder().Decode(regions, nil, true, gpulayout.Storage, &out)
	if !stderrors.Is(err, errors.ErrRegionSizeMismatch) {
		t.Fatalf("Decode error = %v, want region size mismatch", err)
	}

	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("error type %T", err)
	}
	if len(e.Path) != 1 || e.Path[0] != "a" {
		t.Errorf("error path = %v, want [a]", e.Path)
	}
}

func assertOffsets(t *testing.T, lay *Layout, want map[string]uint32) {
	t.Helper()
	for path, off := range want {
		f, ok := lay.Field(path)
		if !ok {
			t.Errorf("field %q missing", path)
			continue
		}
		if f.Offset != off {
			t.Errorf("%s offset = %d, want %d", path, f.Offset, off)
		}
	}
}
