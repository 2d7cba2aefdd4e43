package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEmit  Phase = "emit"  // module and instruction rendering
	PhaseWrite Phase = "write" // copying rendered text to a writer
)

// Kind categorizes the error
type Kind string

const (
	KindUnknownInstruction Kind = "unknown_instruction"
	KindInvalidInput       Kind = "invalid_input"
	KindIO                 Kind = "io"
)

// Error is the structured error type used throughout watgen
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Node   string
	Detail string
	Path   []string
}

// Sentinels for errors.Is. Matching compares Phase and Kind only.
var (
	ErrUnknownInstruction = &Error{Phase: PhaseEmit, Kind: KindUnknownInstruction}
	ErrInvalidInput       = &Error{Phase: PhaseEmit, Kind: KindInvalidInput}
)

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, " > "))
	}

	if e.Node != "" {
		b.WriteString(": node ")
		b.WriteString(e.Node)
	}

	if e.Detail != "" {
		if e.Node != "" {
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

// Path sets the section path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Node sets the Go type name of the offending node
func (b *Builder) Node(t string) *Builder {
	b.err.Node = t
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

// UnknownInstruction reports an instruction node the dispatcher has no encoder for.
// The path is copied.
func UnknownInstruction(path []string, node any) *Error {
	return &Error{
		Phase:  PhaseEmit,
		Kind:   KindUnknownInstruction,
		Path:   append([]string(nil), path...),
		Node:   fmt.Sprintf("%T", node),
		Detail: "no encoder for instruction",
		Value:  node,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(detail string) *Error {
	return &Error{
		Phase:  PhaseEmit,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Write wraps a failure to copy rendered text to its destination
func Write(cause error) *Error {
	return &Error{
		Phase:  PhaseWrite,
		Kind:   KindIO,
		Detail: "write module text",
		Cause:  cause,
	}
}
