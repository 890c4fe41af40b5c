package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/codec"
	"github.com/wippyai/gpu-layout/executor"
	"github.com/wippyai/gpu-layout/executor/hostexec"
	"github.com/wippyai/gpu-layout/shader"
	"github.com/wippyai/gpu-layout/shapes"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	structStyle = cellStyle.
			Foreground(lipgloss.Color("#98FB98"))

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

func renderCatalog() string {
	c := codec.NewCompiler()
	t := newTable("Shape", "Space", "Size", "Align", "Regions", "Description")
	for _, e := range shapes.Catalog() {
		size, align, regions := "-", "-", "-"
		if lay, err := c.Layout(e.Type, e.Space); err == nil {
			size = strconv.Itoa(int(lay.Size))
			align = strconv.Itoa(int(lay.Align))
			regions = strconv.Itoa(len(lay.Regions))
		}
		t.Row(e.Name, e.Space.String(), size, align, regions, e.Description)
	}
	t.StyleFunc(func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	})
	return t.String()
}

func renderLayout(lay *codec.Layout) string {
	t := newTable("Member", "WGSL type", "Offset", "Size", "Align", "Stride")
	for _, f := range lay.Fields {
		stride := ""
		if f.Stride != 0 {
			stride = strconv.Itoa(int(f.Stride))
		}
		t.Row(strings.Repeat("  ", f.Depth)+f.Name, f.WGSLType,
			strconv.Itoa(int(f.Offset)), strconv.Itoa(int(f.Size)), strconv.Itoa(int(f.Align)), stride)
	}
	t.StyleFunc(func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if row >= 0 && row < len(lay.Fields) && lay.Fields[row].IsStruct {
			return structStyle
		}
		return cellStyle
	})

	title := titleStyle.Render(lay.TypeName) +
		fmt.Sprintf(" %s size=%d align=%d", lay.Space, lay.Size, lay.Align)
	return title + "\n" + t.String()
}

func renderRegions(lay *codec.Layout) string {
	t := newTable("Region", "Path", "WGSL type", "Bytes", "Packed offsets")
	for _, r := range lay.Regions {
		offs := make([]string, len(r.Slots))
		for i, s := range r.Slots {
			offs[i] = strconv.Itoa(int(s.Offset))
		}
		t.Row(strconv.Itoa(r.Index), r.Path, r.WGSLType, strconv.Itoa(int(r.Size)), strings.Join(offs, " "))
	}
	t.StyleFunc(func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	})
	return t.String()
}

func declarationsSection(lay *codec.Layout) (string, error) {
	src, err := shader.Declarations(lay)
	if err != nil {
		return "", fmt.Errorf("wgsl: %w", err)
	}
	return strings.TrimRight(src, "\n"), nil
}

func kernelSection(lay *codec.Layout, opName string, check bool) (string, error) {
	op, err := shader.ParseOp(opName)
	if err != nil {
		return "", err
	}
	src, err := shader.CopyKernel(lay, op)
	if err != nil {
		return "", fmt.Errorf("kernel: %w", err)
	}
	out := strings.TrimRight(src, "\n")
	if check {
		spirv, err := shader.Check(src)
		if err != nil {
			return "", fmt.Errorf("check: %w", err)
		}
		out += fmt.Sprintf("\n\n// naga: %d SPIR-V words", len(spirv)/4)
	}
	return out, nil
}

func hexSection(value any, space gpulayout.AddressSpace) (string, error) {
	buf, err := codec.NewEncoder().Encode(value, space)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return strings.TrimRight(hex.Dump(buf), "\n"), nil
}

// runSection round-trips value, a pointer to a struct of the layout's type.
func runSection(ctx context.Context, value any, lay *codec.Layout) (string, error) {
	exec, err := hostexec.New(ctx, lay, &hostexec.Config{Kernel: hostexec.Increment})
	if err != nil {
		return "", fmt.Errorf("executor: %w", err)
	}
	defer exec.Close(ctx)

	out := reflect.New(lay.GoType)
	if err := executor.NewRunner(exec).RunInto(ctx, value, lay.Space, out.Interface()); err != nil {
		return "", fmt.Errorf("run: %w", err)
	}

	return fmt.Sprintf("in:  %+v\nout: %+v", reflect.ValueOf(value).Elem().Interface(), out.Elem().Interface()), nil
}
