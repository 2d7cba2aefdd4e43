package ir

import (
	"fmt"

	"github.com/tetratelabs/wazero/api"
)

// TypeName returns the textual spelling of a value type, e.g. "i32".
func TypeName(t api.ValueType) string {
	return api.ValueTypeName(t)
}

// ResultType is a value type or the "none" sentinel.
type ResultType struct {
	Type  api.ValueType
	Valid bool
}

// NoResult is the sentinel for blocks and functions that produce no value.
var NoResult = ResultType{}

// Returns builds a result carrying t.
func Returns(t api.ValueType) ResultType {
	return ResultType{Type: t, Valid: true}
}

// IsNone reports whether r is the NoResult sentinel.
func (r ResultType) IsNone() bool {
	return !r.Valid
}

func (r ResultType) String() string {
	if !r.Valid {
		return "none"
	}
	return TypeName(r.Type)
}

// RefType is the element type of a table.
type RefType byte

const (
	RefTypeFuncref   RefType = 0x70
	RefTypeExternref RefType = 0x6f
)

func (r RefType) String() string {
	switch r {
	case RefTypeFuncref:
		return "funcref"
	case RefTypeExternref:
		return "externref"
	default:
		return fmt.Sprintf("unknown-reftype-0x%x", byte(r))
	}
}

// OptionalAlign is a load alignment that distinguishes "not supplied" from an
// explicit zero.
type OptionalAlign struct {
	Value uint32
	Set   bool
}

// AlignOf returns an explicitly supplied alignment.
func AlignOf(v uint32) OptionalAlign {
	return OptionalAlign{Value: v, Set: true}
}

// Target is a branch destination: a label name, or a relative depth when the
// label is empty.
type Target struct {
	Label string
	Depth uint32
}

// ToLabel targets the enclosing block or loop named label.
func ToLabel(label string) Target {
	return Target{Label: label}
}

// ToDepth targets the enclosing construct depth levels out.
func ToDepth(depth uint32) Target {
	return Target{Depth: depth}
}

// IsLabel reports whether t refers to a named label.
func (t Target) IsLabel() bool {
	return t.Label != ""
}
