package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile  Phase = "compile"  // Go type to layout
	PhaseEncode   Phase = "encode"   // Go value to bytes
	PhaseDecode   Phase = "decode"   // regions to Go value
	PhaseValidate Phase = "validate" // region count and size checks
	PhaseExecute  Phase = "execute"  // compute job execution
	PhaseGenerate Phase = "generate" // WGSL generation and checking
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch        Kind = "type_mismatch"
	KindUnsupported         Kind = "unsupported"
	KindInvalidInput        Kind = "invalid_input"
	KindInvalidData         Kind = "invalid_data"
	KindNilPointer          Kind = "nil_pointer"
	KindOutOfBounds         Kind = "out_of_bounds"
	KindOverflow            Kind = "overflow"
	KindNotFound            Kind = "not_found"
	KindRegionCountMismatch Kind = "region_count_mismatch"
	KindRegionSizeMismatch  Kind = "region_size_mismatch"
	KindInstantiation       Kind = "instantiation"
	KindInvalidShader       Kind = "invalid_shader"
	KindClosed              Kind = "closed"
)

// Sentinels for errors.Is checks on region validation failures.
var (
	ErrRegionCountMismatch = &Error{Phase: PhaseValidate, Kind: KindRegionCountMismatch}
	ErrRegionSizeMismatch  = &Error{Phase: PhaseValidate, Kind: KindRegionSizeMismatch}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	WGSLType string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.WGSLType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.WGSLType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", WGSL type ")
			b.WriteString(e.WGSLType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("WGSL type ")
			b.WriteString(e.WGSLType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.WGSLType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// WGSLType sets the WGSL type name
func (b *Builder) WGSLType(t string) *Builder {
	b.err.WGSLType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, wgslType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		GoType:   goType,
		WGSLType: wgslType,
	}
}

// Unsupported creates an unsupported type or operation error
func Unsupported(phase Phase, path []string, goType, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Path:   path,
		GoType: goType,
		Detail: what,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Overflow creates an arithmetic overflow error
func Overflow(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: detail,
	}
}

// RegionCountMismatch reports that fewer regions were supplied than the
// type requires.
func RegionCountMismatch(typeName string, got, want int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindRegionCountMismatch,
		GoType: typeName,
		Detail: fmt.Sprintf("got %d regions, need %d", got, want),
		Value:  got,
	}
}

// RegionSizeMismatch reports a region whose length disagrees with the
// expected payload size of its field.
func RegionSizeMismatch(typeName string, path []string, index, got int, want uint32) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindRegionSizeMismatch,
		Path:   path,
		GoType: typeName,
		Detail: fmt.Sprintf("region %d has %d bytes, expected %d", index, got, want),
		Value:  got,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseExecute,
		Kind:   KindInstantiation,
		Detail: "instantiate device memory module",
		Cause:  cause,
	}
}

// InvalidShader wraps a shader compiler failure
func InvalidShader(cause error) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindInvalidShader,
		Detail: "WGSL source rejected by compiler",
		Cause:  cause,
	}
}

// Closed reports use of a component after Close.
func Closed(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", component),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
