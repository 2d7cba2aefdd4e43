package emitter

import (
	"strconv"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/watgen/errors"
	"github.com/wippyai/watgen/ir"
	"github.com/wippyai/watgen/sexpr"
)

// encoder carries the state of one render call. The first dispatch failure is
// kept in err and turns every later instr call into a no-op.
type encoder struct {
	err     *errors.Error
	path    []string
	options Options
}

func newEncoder(opts Options) *encoder {
	return &encoder{options: opts}
}

func (c *encoder) push(segment string) {
	c.path = append(c.path, segment)
}

func (c *encoder) pop() {
	c.path = c.path[:len(c.path)-1]
}

func (c *encoder) fail(in ir.Instr) string {
	if c.err == nil {
		c.err = errors.UnknownInstruction(c.path, in)
		if in != nil {
			c.err.Detail = "no encoder for instruction kind " + in.Kind().String()
		}
	}
	return ""
}

// instr dispatches a node to its encoder.
func (c *encoder) instr(in ir.Instr, indent int) string {
	if c.err != nil {
		return ""
	}

	switch n := in.(type) {
	case *ir.LocalGet:
		return c.varGet("local.get", n.Name, indent)
	case *ir.LocalSet:
		return c.varSet("local.set", n.Name, n.Value, indent)
	case *ir.LocalTee:
		return c.varSet("local.tee", n.Name, n.Value, indent)
	case *ir.GlobalGet:
		return c.varGet("global.get", n.Name, indent)
	case *ir.GlobalSet:
		return c.varSet("global.set", n.Name, n.Value, indent)
	case *ir.GlobalTee:
		return c.varSet("global.tee", n.Name, n.Value, indent)
	case *ir.Binary:
		return c.binary(n, indent)
	case *ir.Eqz:
		return c.eqz(n, indent)
	case *ir.Const:
		return c.constant(n, indent)
	case *ir.Call:
		return c.call(n, indent)
	case *ir.CallIndirect:
		return c.callIndirect(n, indent)
	case *ir.Block:
		return c.block(n, indent)
	case *ir.Loop:
		return c.loop(n, indent)
	case *ir.Drop:
		return c.drop(n, indent)
	case *ir.Br:
		return c.br(n, indent)
	case *ir.BrIf:
		return c.brIf(n, indent)
	case *ir.Store:
		return c.store(n, indent)
	case *ir.Load:
		return c.load(n, indent)
	default:
		return c.fail(in)
	}
}

// instrs renders each node one level deeper than indent.
func (c *encoder) instrs(body []ir.Instr, indent int) []string {
	out := make([]string, 0, len(body))
	for _, in := range body {
		out = append(out, c.instr(in, indent+1))
	}
	return out
}

func (c *encoder) varGet(head, name string, indent int) string {
	return sexpr.Render(head, []string{sigil(name)}, nil, indent)
}

func (c *encoder) varSet(head, name string, value ir.Instr, indent int) string {
	return sexpr.Render(head,
		[]string{sigil(name)},
		[]string{c.instr(value, indent+1)},
		indent)
}

func (c *encoder) binary(n *ir.Binary, indent int) string {
	kind := n.Kind()
	if !kind.Valid() {
		return c.fail(n)
	}
	return sexpr.Render(typedHead(n.Type, kind), nil, []string{
		c.instr(n.Left, indent+1),
		c.instr(n.Right, indent+1),
	}, indent)
}

func (c *encoder) eqz(n *ir.Eqz, indent int) string {
	return sexpr.Render(typedHead(n.Type, ir.KindEqz), nil,
		[]string{c.instr(n.Operand, indent+1)},
		indent)
}

func (c *encoder) constant(n *ir.Const, indent int) string {
	return sexpr.Render(typedHead(n.Type, ir.KindConst), []string{n.Value}, nil, indent)
}

func (c *encoder) call(n *ir.Call, indent int) string {
	return sexpr.Render("call", []string{sigil(n.Func)}, c.instrs(n.Args, indent), indent)
}

func (c *encoder) callIndirect(n *ir.CallIndirect, indent int) string {
	child := indent + 1
	blocks := make([]string, 0, len(n.Params)+len(n.Args)+3)
	blocks = append(blocks, sexpr.Line(child, sigil(n.Table)))
	for _, p := range n.Params {
		blocks = append(blocks, sexpr.Line(child, "(param "+ir.TypeName(p)+")"))
	}
	// The result line is unconditional here, unlike block and func.
	blocks = append(blocks, sexpr.Line(child, "(result "+n.Result.String()+")"))
	blocks = append(blocks, c.instrs(n.Args, indent)...)
	blocks = append(blocks, c.instr(n.Index, child))
	return sexpr.Render("call_indirect", nil, blocks, indent)
}

func (c *encoder) block(n *ir.Block, indent int) string {
	child := indent + 1
	blocks := make([]string, 0, len(n.Body)+2)
	blocks = append(blocks,
		sexpr.Optional(n.Label != "", sexpr.Line(child, sigil(n.Label))),
		sexpr.Optional(!n.Result.IsNone(), sexpr.Line(child, "(result "+n.Result.String()+")")))
	blocks = append(blocks, c.instrs(n.Body, indent)...)
	return sexpr.Render("block", nil, blocks, indent)
}

func (c *encoder) loop(n *ir.Loop, indent int) string {
	return sexpr.Render("loop",
		[]string{sexpr.Optional(n.Label != "", sigil(n.Label))},
		c.instrs(n.Body, indent),
		indent)
}

func (c *encoder) drop(n *ir.Drop, indent int) string {
	return sexpr.Render("drop", nil, []string{c.instr(n.Value, indent+1)}, indent)
}

func (c *encoder) br(n *ir.Br, indent int) string {
	return sexpr.Render("br", []string{target(n.Target)}, nil, indent)
}

func (c *encoder) brIf(n *ir.BrIf, indent int) string {
	return sexpr.Render("br_if",
		[]string{target(n.Target)},
		[]string{c.instr(n.Cond, indent+1)},
		indent)
}

// store omits offset and align when zero.
func (c *encoder) store(n *ir.Store, indent int) string {
	kind := n.Kind()
	if !kind.Valid() {
		return c.fail(n)
	}
	child := indent + 1
	return sexpr.Render(typedHead(n.Type, kind), nil, []string{
		sexpr.Optional(n.Offset != 0, sexpr.Line(child, "offset="+u32(n.Offset))),
		sexpr.Optional(n.Align != 0, sexpr.Line(child, "align="+u32(n.Align))),
		c.instr(n.Base, child),
		c.instr(n.Value, child),
	}, indent)
}

// load omits a zero offset but prints align whenever it was supplied,
// including align=0.
func (c *encoder) load(n *ir.Load, indent int) string {
	kind := n.Kind()
	if !kind.Valid() {
		return c.fail(n)
	}
	child := indent + 1
	return sexpr.Render(typedHead(n.Type, kind), nil, []string{
		sexpr.Optional(n.Offset != 0, sexpr.Line(child, "offset="+u32(n.Offset))),
		sexpr.Optional(n.Align.Set, sexpr.Line(child, "align="+u32(n.Align.Value))),
		c.instr(n.Base, child),
	}, indent)
}

func sigil(name string) string {
	return "$" + name
}

func target(t ir.Target) string {
	if t.IsLabel() {
		return sigil(t.Label)
	}
	return u32(t.Depth)
}

// typedHead spells a typed operator such as i32.add or i64.load8_s.
func typedHead(t api.ValueType, kind ir.Kind) string {
	return ir.TypeName(t) + "." + kind.String()
}

func u32(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
