package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/wippyai/gpu-layout/codec"
)

// regionTexts renders value as one line of scalars per region.
func regionTexts(lay *codec.Layout, value any) ([]string, error) {
	packed, err := codec.NewEncoder().Encode(value, lay.Space)
	if err != nil {
		return nil, err
	}
	regions, err := lay.Split(packed)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(regions))
	for i, r := range lay.Regions {
		words := make([]string, len(r.Slots))
		for j, s := range r.Slots {
			words[j] = formatScalar(s.Kind, binary.LittleEndian.Uint32(regions[i][j*4:]))
		}
		texts[i] = strings.Join(words, " ")
	}
	return texts, nil
}

func formatScalar(kind codec.ScalarKind, bits uint32) string {
	switch kind {
	case codec.ScalarI32:
		return strconv.FormatInt(int64(int32(bits)), 10)
	case codec.ScalarU32:
		return strconv.FormatUint(uint64(bits), 10)
	default:
		return strconv.FormatFloat(float64(math.Float32frombits(bits)), 'g', -1, 32)
	}
}

// parseRegion turns a line of scalars separated by spaces or commas into
// the region's dense payload.
func parseRegion(r codec.Region, text string) ([]byte, error) {
	words := strings.Fields(strings.ReplaceAll(text, ",", " "))
	if len(words) != len(r.Slots) {
		return nil, fmt.Errorf("%s: want %d values, got %d", r.Path, len(r.Slots), len(words))
	}

	out := make([]byte, 0, r.Size)
	for i, w := range words {
		bits, err := parseScalar(r.Slots[i].Kind, w)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", r.Path, i, err)
		}
		out = binary.LittleEndian.AppendUint32(out, bits)
	}
	return out, nil
}

func parseScalar(kind codec.ScalarKind, s string) (uint32, error) {
	switch kind {
	case codec.ScalarI32:
		v, err := strconv.ParseInt(s, 0, 32)
		return uint32(int32(v)), err
	case codec.ScalarU32:
		v, err := strconv.ParseUint(s, 0, 32)
		return uint32(v), err
	default:
		v, err := strconv.ParseFloat(s, 32)
		return math.Float32bits(float32(v)), err
	}
}

// valueFromTexts decodes edited region lines into a new value of the
// layout's type and returns a pointer to it.
func valueFromTexts(lay *codec.Layout, texts []string) (any, error) {
	if len(texts) != len(lay.Regions) {
		return nil, fmt.Errorf("want %d regions, got %d", len(lay.Regions), len(texts))
	}
	regions := make([][]byte, len(texts))
	for i, r := range lay.Regions {
		data, err := parseRegion(r, texts[i])
		if err != nil {
			return nil, err
		}
		regions[i] = data
	}

	out := reflect.New(lay.GoType)
	if err := codec.NewDecoder().Decode(regions, lay.RegionSizes(), true, lay.Space, out.Interface()); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}
