package ir

import "fmt"

// Kind tags an instruction variant.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindLocalGet
	KindLocalSet
	KindLocalTee
	KindGlobalGet
	KindGlobalSet
	KindGlobalTee
	KindAdd
	KindSub
	KindMul
	KindDivS
	KindDivU
	KindRemS
	KindRemU
	KindEqz
	KindConst
	KindCall
	KindCallIndirect
	KindBlock
	KindLoop
	KindDrop
	KindBr
	KindBrIf
	KindStore
	KindStore8
	KindStore16
	KindStore32
	KindLoad
	KindLoad8S
	KindLoad8U
	KindLoad16S
	KindLoad16U
	KindLoad32S
	KindLoad32U

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:      "invalid",
	KindLocalGet:     "local.get",
	KindLocalSet:     "local.set",
	KindLocalTee:     "local.tee",
	KindGlobalGet:    "global.get",
	KindGlobalSet:    "global.set",
	KindGlobalTee:    "global.tee",
	KindAdd:          "add",
	KindSub:          "sub",
	KindMul:          "mul",
	KindDivS:         "div_s",
	KindDivU:         "div_u",
	KindRemS:         "rem_s",
	KindRemU:         "rem_u",
	KindEqz:          "eqz",
	KindConst:        "const",
	KindCall:         "call",
	KindCallIndirect: "call_indirect",
	KindBlock:        "block",
	KindLoop:         "loop",
	KindDrop:         "drop",
	KindBr:           "br",
	KindBrIf:         "br_if",
	KindStore:        "store",
	KindStore8:       "store8",
	KindStore16:      "store16",
	KindStore32:      "store32",
	KindLoad:         "load",
	KindLoad8S:       "load8_s",
	KindLoad8U:       "load8_u",
	KindLoad16S:      "load16_s",
	KindLoad16U:      "load16_u",
	KindLoad32S:      "load32_s",
	KindLoad32U:      "load32_u",
}

// String returns the operator spelling of the kind. Typed operators omit the
// value type prefix.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is a known instruction kind.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}
