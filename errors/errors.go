package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseClassify Phase = "classify" // signature classification
	PhaseLayout   Phase = "layout"   // size/alignment computation
	PhaseView     Phase = "view"     // array view construction and access
	PhaseParse    Phase = "parse"    // signature text parsing
	PhaseConfig   Phase = "config"   // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupportedType Kind = "unsupported_type"
	KindDtypeMismatch   Kind = "dtype_mismatch"
	KindMissingDtype    Kind = "missing_dtype"
	KindInvalidPointer  Kind = "invalid_pointer"
	KindInvalidShape    Kind = "invalid_shape"
	KindOutOfBounds     Kind = "out_of_bounds"
	KindOverflow        Kind = "overflow"
	KindSyntax          Kind = "syntax"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	DType   string
	PtrType string
	Detail  string
	Path    []string
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

	if e.DType != "" || e.PtrType != "" {
		b.WriteString(": ")
		if e.DType != "" && e.PtrType != "" {
			b.WriteString("mismatching dtype '")
			b.WriteString(e.DType)
			b.WriteString("' for pointer type '")
			b.WriteString(e.PtrType)
			b.WriteByte('\'')
		} else if e.DType != "" {
			b.WriteString("dtype ")
			b.WriteString(e.DType)
		} else {
			b.WriteString("pointer type ")
			b.WriteString(e.PtrType)
		}
	}

	if e.Detail != "" {
		if e.DType != "" || e.PtrType != "" {
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

// DType sets the requested element type name
func (b *Builder) DType(t string) *Builder {
	b.err.DType = t
	return b
}

// PtrType sets the static pointer type name
func (b *Builder) PtrType(t string) *Builder {
	b.err.PtrType = t
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

// UnsupportedType creates an unsupported type error
func UnsupportedType(phase Phase, path []string, typeName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedType,
		Path:   path,
		Detail: fmt.Sprintf("unsupported type %s", typeName),
		Value:  typeName,
	}
}

// DtypeMismatch creates an error for a dtype that contradicts a typed pointer
func DtypeMismatch(dtype, ptrType string) *Error {
	return &Error{
		Phase:   PhaseView,
		Kind:    KindDtypeMismatch,
		DType:   dtype,
		PtrType: ptrType,
	}
}

// MissingDtype creates an error for an opaque pointer with no element type
func MissingDtype() *Error {
	return &Error{
		Phase:  PhaseView,
		Kind:   KindMissingDtype,
		Detail: "dtype required for void pointer",
	}
}

// InvalidPointer creates an error for a value no address can be derived from
func InvalidPointer(goType string) *Error {
	return &Error{
		Phase:  PhaseView,
		Kind:   KindInvalidPointer,
		Detail: fmt.Sprintf("expected a pointer, got %s", goType),
	}
}

// InvalidShape creates an error for a malformed shape or slice argument
func InvalidShape(detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseView,
		Kind:   KindInvalidShape,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, extent int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (extent %d)", index, extent),
		Value:  index,
	}
}

// Overflow creates a size arithmetic overflow error
func Overflow(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: detail,
	}
}

// Syntax creates a parse error at a byte offset
func Syntax(offset int, detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindSyntax,
		Detail: fmt.Sprintf("%s at offset %d", fmt.Sprintf(detail, args...), offset),
		Value:  offset,
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
