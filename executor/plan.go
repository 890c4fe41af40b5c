package executor

import (
	"github.com/gogpu/gputypes"
	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/codec"
)

// DefaultOffsetAlignment is the WebGPU minimum storage and uniform buffer
// offset alignment.
const DefaultOffsetAlignment = 256

// PlanConfig configures PlanBuffers. A nil PlanConfig uses defaults.
type PlanConfig struct {
	// OffsetAlignment aligns every buffer's offset inside a shared arena.
	OffsetAlignment uint32
}

// BufferSpec describes one buffer of a job.
type BufferSpec struct {
	Label   string
	Binding uint32
	Offset  uint64
	Size    uint64
	Usage   gputypes.BufferUsage
}

// BufferPlan lists the buffers and bind group layout of a copy-out job.
//
// Input and Outputs are placed back to back in one arena at aligned
// offsets; Staging is a separate mappable buffer sized for the largest
// region, reused for every read back.
type BufferPlan struct {
	Input     BufferSpec
	Outputs   []BufferSpec
	Staging   BufferSpec
	Entries   []gputypes.BindGroupLayoutEntry
	ArenaSize uint64
}

// PlanBuffers plans the buffers for lay with default settings.
func PlanBuffers(lay *codec.Layout) BufferPlan {
	return PlanBuffersWithConfig(lay, nil)
}

func PlanBuffersWithConfig(lay *codec.Layout, cfg *PlanConfig) BufferPlan {
	align := uint32(DefaultOffsetAlignment)
	if cfg != nil && cfg.OffsetAlignment != 0 {
		align = cfg.OffsetAlignment
	}

	inputUsage := gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst
	inputBinding := gputypes.BufferBindingTypeReadOnlyStorage
	if lay.Space == gpulayout.Uniform {
		inputUsage = gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst
		inputBinding = gputypes.BufferBindingTypeUniform
	}

	plan := BufferPlan{
		Input: BufferSpec{
			Label:   lay.TypeName + " input",
			Binding: 0,
			Size:    bindingSize(lay.Size),
			Usage:   inputUsage,
		},
		Outputs: make([]BufferSpec, len(lay.Regions)),
		Staging: BufferSpec{
			Label: lay.TypeName + " staging",
			Size:  uint64(lay.LargestRegion()),
			Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
		},
		Entries: make([]gputypes.BindGroupLayoutEntry, 0, len(lay.Regions)+1),
	}

	plan.Entries = append(plan.Entries, gputypes.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: gputypes.ShaderStageCompute,
		Buffer: &gputypes.BufferBindingLayout{
			Type:           inputBinding,
			MinBindingSize: plan.Input.Size,
		},
	})

	next := uint64(codec.RoundUp(uint32(plan.Input.Size), align))
	for i, r := range lay.Regions {
		out := BufferSpec{
			Label:   lay.TypeName + "." + r.Path,
			Binding: uint32(i + 1),
			Offset:  next,
			Size:    bindingSize(r.Size),
			Usage:   gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
		}
		plan.Outputs[i] = out
		plan.Entries = append(plan.Entries, gputypes.BindGroupLayoutEntry{
			Binding:    out.Binding,
			Visibility: gputypes.ShaderStageCompute,
			Buffer: &gputypes.BufferBindingLayout{
				Type:           gputypes.BufferBindingTypeStorage,
				MinBindingSize: out.Size,
			},
		})
		next = uint64(codec.RoundUp(uint32(next+out.Size), align))
	}
	plan.ArenaSize = next

	return plan
}

// bindingSize keeps empty bindings at the four-byte minimum a device
// accepts.
func bindingSize(n uint32) uint64 {
	if n < 4 {
		return 4
	}
	return uint64(n)
}
