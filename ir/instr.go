package ir

import (
	"math"
	"strconv"

	"github.com/tetratelabs/wazero/api"
)

// Instr is a node of an instruction tree.
type Instr interface {
	Kind() Kind
}

// LocalGet reads a local variable or parameter.
type LocalGet struct {
	Name string
}

// LocalSet writes Value to a local.
type LocalSet struct {
	Value Instr
	Name  string
}

// LocalTee writes Value to a local and leaves it on the stack.
type LocalTee struct {
	Value Instr
	Name  string
}

// GlobalGet reads a global.
type GlobalGet struct {
	Name string
}

// GlobalSet writes Value to a global.
type GlobalSet struct {
	Value Instr
	Name  string
}

// GlobalTee writes Value to a global and leaves it on the stack.
type GlobalTee struct {
	Value Instr
	Name  string
}

// BinaryOp selects the arithmetic operator of a Binary.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota + 1
	OpSub
	OpMul
	OpDivS
	OpDivU
	OpRemS
	OpRemU
)

// Binary applies Op to Left and Right, both of Type.
type Binary struct {
	Left  Instr
	Right Instr
	Op    BinaryOp
	Type  api.ValueType
}

// Eqz tests an integer operand for zero.
type Eqz struct {
	Operand Instr
	Type    api.ValueType
}

// Const is a constant. Value is the literal text and is rendered verbatim.
type Const struct {
	Value string
	Type  api.ValueType
}

// Call calls Func directly.
type Call struct {
	Func string
	Args []Instr
}

// CallIndirect calls the function stored in Table at the index computed by
// Index, checking it against Params and Result.
type CallIndirect struct {
	Index  Instr
	Table  string
	Params []api.ValueType
	Args   []Instr
	Result ResultType
}

// Block is a structured block. Label may be empty.
type Block struct {
	Label  string
	Body   []Instr
	Result ResultType
}

// Loop is a structured loop. Label may be empty.
type Loop struct {
	Label string
	Body  []Instr
}

// Drop discards Value.
type Drop struct {
	Value Instr
}

// Br branches unconditionally.
type Br struct {
	Target Target
}

// BrIf branches when Cond is non-zero.
type BrIf struct {
	Cond   Instr
	Target Target
}

// Width is the number of bits a narrowed load or store accesses. WidthNatural
// accesses the full value type.
type Width uint8

const (
	WidthNatural Width = 0
	Width8       Width = 8
	Width16      Width = 16
	Width32      Width = 32
)

// Store writes Value to memory at Base+Offset. A zero Offset or Align is not
// rendered.
type Store struct {
	Base   Instr
	Value  Instr
	Offset uint32
	Align  uint32
	Type   api.ValueType
	Width  Width
}

// Load reads memory at Base+Offset. Narrowed loads extend to Type, with sign
// extension when Signed is set. Align is rendered whenever it is set, even
// when zero.
type Load struct {
	Base   Instr
	Align  OptionalAlign
	Offset uint32
	Type   api.ValueType
	Width  Width
	Signed bool
}

func (*LocalGet) Kind() Kind     { return KindLocalGet }
func (*LocalSet) Kind() Kind     { return KindLocalSet }
func (*LocalTee) Kind() Kind     { return KindLocalTee }
func (*GlobalGet) Kind() Kind    { return KindGlobalGet }
func (*GlobalSet) Kind() Kind    { return KindGlobalSet }
func (*GlobalTee) Kind() Kind    { return KindGlobalTee }
func (*Eqz) Kind() Kind          { return KindEqz }
func (*Const) Kind() Kind        { return KindConst }
func (*Call) Kind() Kind         { return KindCall }
func (*CallIndirect) Kind() Kind { return KindCallIndirect }
func (*Block) Kind() Kind        { return KindBlock }
func (*Loop) Kind() Kind         { return KindLoop }
func (*Drop) Kind() Kind         { return KindDrop }
func (*Br) Kind() Kind           { return KindBr }
func (*BrIf) Kind() Kind         { return KindBrIf }

// Kind returns KindInvalid for an unknown operator.
func (b *Binary) Kind() Kind {
	switch b.Op {
	case OpAdd:
		return KindAdd
	case OpSub:
		return KindSub
	case OpMul:
		return KindMul
	case OpDivS:
		return KindDivS
	case OpDivU:
		return KindDivU
	case OpRemS:
		return KindRemS
	case OpRemU:
		return KindRemU
	default:
		return KindInvalid
	}
}

// Kind returns KindInvalid for an unknown width.
func (s *Store) Kind() Kind {
	switch s.Width {
	case WidthNatural:
		return KindStore
	case Width8:
		return KindStore8
	case Width16:
		return KindStore16
	case Width32:
		return KindStore32
	default:
		return KindInvalid
	}
}

// Kind returns KindInvalid for an unknown width.
func (l *Load) Kind() Kind {
	switch {
	case l.Width == WidthNatural:
		return KindLoad
	case l.Width == Width8 && l.Signed:
		return KindLoad8S
	case l.Width == Width8:
		return KindLoad8U
	case l.Width == Width16 && l.Signed:
		return KindLoad16S
	case l.Width == Width16:
		return KindLoad16U
	case l.Width == Width32 && l.Signed:
		return KindLoad32S
	case l.Width == Width32:
		return KindLoad32U
	default:
		return KindInvalid
	}
}

// I32Const builds an i32 constant.
func I32Const(v int32) *Const {
	return &Const{Type: api.ValueTypeI32, Value: strconv.FormatInt(int64(v), 10)}
}

// I64Const builds an i64 constant.
func I64Const(v int64) *Const {
	return &Const{Type: api.ValueTypeI64, Value: strconv.FormatInt(v, 10)}
}

// F32Const builds an f32 constant.
func F32Const(v float32) *Const {
	return &Const{Type: api.ValueTypeF32, Value: formatFloat(float64(v), 32)}
}

// F64Const builds an f64 constant.
func F64Const(v float64) *Const {
	return &Const{Type: api.ValueTypeF64, Value: formatFloat(v, 64)}
}

// formatFloat spells non-finite values the way the text format does.
func formatFloat(v float64, bits int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, bits)
}
