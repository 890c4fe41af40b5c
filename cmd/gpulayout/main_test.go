package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/codec"
	"github.com/wippyai/gpu-layout/shapes"
	"github.com/wippyai/gpu-layout/wgsl"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		opts    options
		want    []string
		wantErr string
	}{
		{
			name: "list",
			opts: options{list: true},
			want: []string{"Beginner", "Camera", "Particle"},
		},
		{
			name: "layout",
			opts: options{typeName: "advanced"},
			want: []string{"shapes.Advanced", "mat4x2<f32>", "c.b"},
		},
		{
			name: "wgsl",
			opts: options{typeName: "Camera", wgsl: true},
			want: []string{"struct Camera {", "view_proj: mat4x4<f32>,"},
		},
		{
			name: "kernel",
			opts: options{typeName: "Beginner", kernel: "increment"},
			want: []string{"@compute @workgroup_size(1)", "bitcast<u32>(src.b[1] + 1.0)"},
		},
		{
			name: "hex",
			opts: options{typeName: "Beginner", hex: true},
			want: []string{"01 00 00 00 00 00 00 00  00 00 80 3f 00 00 80 3f"},
		},
		{
			name: "run",
			opts: options{typeName: "Beginner", run: true},
			want: []string{"in:  {A:1 B:[1 1]}", "out: {A:2 B:[2 2]}"},
		},
		{
			name:    "unknown shape",
			opts:    options{typeName: "nope"},
			wantErr: "unknown shape",
		},
		{
			name:    "bad space",
			opts:    options{typeName: "Beginner", space: "private"},
			wantErr: "unknown address space",
		},
		{
			name:    "bad kernel",
			opts:    options{typeName: "Beginner", kernel: "double"},
			wantErr: "not found",
		},
		{
			name:    "uniform array in wgsl",
			opts:    options{typeName: "InUniform", wgsl: true},
			wantErr: "cannot be expressed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := run(context.Background(), &buf, tt.opts)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			for _, s := range tt.want {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("output missing %q:\n%s", s, buf.String())
				}
			}
		})
	}
}

func TestInteractiveModel(t *testing.T) {
	m := newInteractiveModel()
	if len(m.entries) == 0 {
		t.Fatal("catalog is empty")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.selected != 1 {
		t.Errorf("selected = %d, want 1", m.selected)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.picked || cmd == nil {
		t.Fatal("enter should pick the shape and render")
	}
	m.Update(cmd())
	if m.err != nil || !strings.Contains(m.body, "Intermediate") {
		t.Errorf("body = %q, err = %v", m.body, m.err)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if m.space != gpulayout.Uniform || cmd == nil {
		t.Errorf("space = %s after toggle", m.space)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewWGSL || cmd == nil {
		t.Errorf("view = %d after tab", m.view)
	}
	m.Update(cmd())
	if !strings.Contains(m.View(), "struct Intermediate") {
		t.Errorf("view:\n%s", m.View())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.picked {
		t.Error("esc should return to the list")
	}
}

func TestInteractiveEdit(t *testing.T) {
	m := newInteractiveModel()
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	if !m.editing || len(m.inputs) != 3 {
		t.Fatalf("editing = %v with %d inputs", m.editing, len(m.inputs))
	}
	if got := m.inputs[1].Value(); got != "1 1 1" {
		t.Errorf("prefilled b = %q", got)
	}

	m.inputs[0].SetValue("oops")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.err == nil || !m.editing {
		t.Fatal("bad input should keep the editor open with an error")
	}

	m.inputs[0].SetValue("42")
	m.inputs[2].SetValue("-3, 4")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.editing || cmd == nil {
		t.Fatal("enter should apply the edit and render")
	}
	got := *m.value.(*shapes.Intermediate)
	want := shapes.Intermediate{A: 42, B: wgsl.Vec3[float32]{1, 1, 1}, C: wgsl.Vec2[int32]{-3, 4}}
	if got != want {
		t.Errorf("value = %+v, want %+v", got, want)
	}
}

func TestRegionTexts(t *testing.T) {
	lay, err := codec.LayoutOf[shapes.Camera](gpulayout.Uniform)
	if err != nil {
		t.Fatalf("LayoutOf: %v", err)
	}
	in := &shapes.Camera{
		Eye:      wgsl.Vec3[float32]{0.5, -2, 3},
		Time:     1.25,
		Viewport: wgsl.Vec2[uint32]{1920, 1080},
	}
	in.ViewProj[3][2] = 7

	texts, err := regionTexts(lay, in)
	if err != nil {
		t.Fatalf("regionTexts: %v", err)
	}
	wantTexts := []string{
		"0 0 0 0 0 0 0 0 0 0 0 0 0 0 7 0",
		"0.5 -2 3",
		"1.25",
		"1920 1080",
	}
	for i, want := range wantTexts {
		if texts[i] != want {
			t.Errorf("region %d = %q, want %q", i, texts[i], want)
		}
	}

	out, err := valueFromTexts(lay, texts)
	if err != nil {
		t.Fatalf("valueFromTexts: %v", err)
	}
	if *out.(*shapes.Camera) != *in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestParseRegion(t *testing.T) {
	lay, _ := codec.LayoutOf[shapes.Advanced](gpulayout.Storage)
	tests := []struct {
		region  int
		text    string
		want    []byte
		wantErr string
	}{
		{region: 0, text: "0x10", want: []byte{0x10, 0, 0, 0}},
		{region: 1, text: "-1,2 3", want: []byte{0xff, 0xff, 0xff, 0xff, 2, 0, 0, 0, 3, 0, 0, 0}},
		{region: 1, text: "1 2", wantErr: "want 3 values, got 2"},
		{region: 0, text: "-1", wantErr: "a[0]"},
		{region: 3, text: "1 2 3 4 5 6 7 x", wantErr: "c.b[7]"},
	}
	for _, tt := range tests {
		got, err := parseRegion(lay.Regions[tt.region], tt.text)
		if tt.wantErr != "" {
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("parseRegion(%q) error = %v, want %q", tt.text, err, tt.wantErr)
			}
			continue
		}
		if err != nil || !bytes.Equal(got, tt.want) {
			t.Errorf("parseRegion(%q) = %v, %v", tt.text, got, err)
		}
	}
}
