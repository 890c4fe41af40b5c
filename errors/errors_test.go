package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseCompile,
				Kind:     KindTypeMismatch,
				Path:     []string{"params", "inner", "count"},
				GoType:   "int64",
				WGSLType: "i32",
				Detail:   "not host-shareable",
			},
			contains: []string{"[compile]", "type_mismatch", "params.inner.count", "int64", "WGSL type i32", "not host-shareable"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[decode]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseExecute,
				Kind:   KindInstantiation,
				Detail: "memory module",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[execute]", "instantiation", "memory module", "caused by", "underlying error"},
		},
		{
			name: "wgsl type only",
			err: &Error{
				Phase:    PhaseGenerate,
				Kind:     KindUnsupported,
				WGSLType: "f16",
				Detail:   "half precision",
			},
			contains: []string{"WGSL type f16 - half precision"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindTypeMismatch,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseEncode, Kind: KindTypeMismatch}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseDecode, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseEncode, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseEncode, Kind: KindTypeMismatch}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestRegionSentinels(t *testing.T) {
	count := RegionCountMismatch("Advanced", 2, 6)
	if !errors.Is(count, ErrRegionCountMismatch) {
		t.Error("RegionCountMismatch should match ErrRegionCountMismatch")
	}
	if errors.Is(count, ErrRegionSizeMismatch) {
		t.Error("RegionCountMismatch should not match ErrRegionSizeMismatch")
	}
	if !strings.Contains(count.Error(), "got 2 regions, need 6") {
		t.Errorf("unexpected message: %s", count)
	}

	size := RegionSizeMismatch("Beginner", []string{"a"}, 0, 8, 4)
	if !errors.Is(size, ErrRegionSizeMismatch) {
		t.Error("RegionSizeMismatch should match ErrRegionSizeMismatch")
	}
	if size.Value != 8 {
		t.Errorf("Value = %v, want 8", size.Value)
	}
	if !strings.Contains(size.Error(), "at a") {
		t.Errorf("message should name the field: %s", size)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseCompile, KindTypeMismatch).
		Path("params", "count").
		GoType("string").
		WGSLType("u32").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "uint32", "string").
		Build()

	if err.Phase != PhaseCompile {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseCompile)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "params" || err.Path[1] != "count" {
		t.Errorf("Path = %v, want [params count]", err.Path)
	}
	if err.GoType != "string" {
		t.Errorf("GoType = %v, want 'string'", err.GoType)
	}
	if err.WGSLType != "u32" {
		t.Errorf("WGSLType = %v, want 'u32'", err.WGSLType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected uint32, got string" {
		t.Errorf("Detail = %v, want 'expected uint32, got string'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseCompile, []string{"field"}, "int", "i32")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
		if err.GoType != "int" || err.WGSLType != "i32" {
			t.Errorf("GoType=%v WGSLType=%v", err.GoType, err.WGSLType)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseCompile, []string{"flag"}, "bool", "bool is not host-shareable")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseExecute, nil, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("NilPointer", func(t *testing.T) {
		err := NilPointer(PhaseEncode, nil, "*Params")
		if err.Kind != KindNilPointer {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNilPointer)
		}
		if err.GoType != "*Params" {
			t.Errorf("GoType = %v, want '*Params'", err.GoType)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseExecute, "job", "7")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if !strings.Contains(err.Detail, `job "7" not found`) {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("InvalidShader", func(t *testing.T) {
		cause := errors.New("unexpected token")
		err := InvalidShader(cause)
		if !errors.Is(err, cause) {
			t.Error("InvalidShader should wrap its cause")
		}
	})

	t.Run("Closed", func(t *testing.T) {
		err := Closed(PhaseExecute, "executor")
		if err.Kind != KindClosed {
			t.Errorf("Kind = %v, want %v", err.Kind, KindClosed)
		}
	})
}
