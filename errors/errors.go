package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRead   Phase = "read"   // raw buffer access
	PhaseLocate Phase = "locate" // asset table search
	PhaseDecode Phase = "decode" // entry decoding
	PhaseRender Phase = "render" // composite rendering
	PhaseDepack Phase = "depack" // container depacking
	PhaseEncode Phase = "encode" // writing artifacts
	PhaseConfig Phase = "config" // options and config files
)

// Kind categorizes the error
type Kind string

const (
	KindTableNotFound Kind = "table_not_found"
	KindOutOfBounds   Kind = "out_of_bounds"
	KindUnknownTag    Kind = "unknown_tag"
	KindEncoderIO     Kind = "encoder_io"
	KindInvalidInput  Kind = "invalid_input"
	KindInvalidData   Kind = "invalid_data"
	KindCycle         Kind = "cycle"
	KindUnsupported   Kind = "unsupported"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
	Offset int
	// HasOffset distinguishes offset 0 from no offset.
	HasOffset bool
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

	if e.HasOffset {
		fmt.Fprintf(&b, " (offset 0x%06x)", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
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

// Path sets the asset path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Offset sets the byte offset the error refers to
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	b.err.HasOffset = true
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

// OutOfBounds creates an error for a read of width bytes at off in a buffer of length bytes
func OutOfBounds(phase Phase, off, width, length int) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindOutOfBounds,
		Offset:    off,
		HasOffset: true,
		Detail:    fmt.Sprintf("%d bytes at %d exceed buffer length %d", width, off, length),
		Value:     off,
	}
}

// TableNotFound creates the error reported when no asset table heuristic matched
func TableNotFound(script string) *Error {
	return &Error{
		Phase:  PhaseLocate,
		Kind:   KindTableNotFound,
		Path:   []string{script},
		Detail: "no address block found",
	}
}

// UnknownTag creates an unknown tag error for the entry at index
func UnknownTag(index int, tag uint32, location int) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindUnknownTag,
		Path:      []string{"entry", fmt.Sprint(index)},
		Offset:    location,
		HasOffset: true,
		Detail:    fmt.Sprintf("tag 0x%03x", tag),
		Value:     tag,
	}
}

// Cycle creates an error for an entry referenced while it is still being decoded
func Cycle(index int) *Error {
	return &Error{
		Phase:  PhaseRender,
		Kind:   KindCycle,
		Path:   []string{"entry", fmt.Sprint(index)},
		Detail: "entry references itself while decoding",
		Value:  index,
	}
}

// EncoderIO wraps a failure writing an artifact to path
func EncoderIO(path string, cause error) *Error {
	return &Error{
		Phase: PhaseEncode,
		Kind:  KindEncoderIO,
		Path:  []string{path},
		Cause: cause,
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

// Unsupported creates an unsupported feature error
func Unsupported(phase Phase, feature string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: feature + " not supported",
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

// IsKind reports whether err, or any error it wraps, is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	switch e := err.(type) {
	case nil:
		return false
	case *Error:
		if e.Kind == kind {
			return true
		}
		return IsKind(e.Cause, kind)
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if IsKind(inner, kind) {
				return true
			}
		}
		return false
	case interface{ Unwrap() error }:
		return IsKind(e.Unwrap(), kind)
	}
	return false
}
