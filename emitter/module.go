package emitter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/watgen/ir"
	"github.com/wippyai/watgen/sexpr"
)

// Section declarations sit one level inside (module ...); their embedded
// expressions sit one level deeper.
const (
	sectionIndent = 1
	fieldIndent   = 2
)

func (c *encoder) module(m *ir.Module) string {
	var blocks []string

	for i := range m.Memories {
		blocks = c.memory(blocks, &m.Memories[i])
	}
	for i := range m.Tables {
		blocks = c.table(blocks, &m.Tables[i])
	}
	for i := range m.Globals {
		blocks = append(blocks, c.global(&m.Globals[i]))
	}
	for i := range m.Funcs {
		if f := &m.Funcs[i]; f.Exported() {
			blocks = append(blocks, funcExport(f))
		}
	}
	for i := range m.Funcs {
		blocks = append(blocks, c.function(&m.Funcs[i]))
	}
	if m.HasStart() {
		blocks = append(blocks, sexpr.Render("start", []string{sigil(m.Start)}, nil, sectionIndent))
	}

	if c.err != nil {
		return ""
	}
	return sexpr.Render("module", nil, blocks, 0)
}

// memory appends the declaration, the export of the memory under its own
// name and one data line per segment.
func (c *encoder) memory(blocks []string, mem *ir.Memory) []string {
	c.push("memory " + sigil(mem.Name))
	defer c.pop()

	blocks = append(blocks,
		sexpr.Render("memory", []string{sigil(mem.Name), u32(mem.Initial), u32(mem.Maximum)}, nil, sectionIndent),
		sexpr.Render("export", []string{quote(mem.Name), "(memory " + sigil(mem.Name) + ")"}, nil, sectionIndent))

	for i := range mem.Segments {
		seg := &mem.Segments[i]
		c.push(fmt.Sprintf("data[%d]", i))
		blocks = append(blocks, sexpr.Render("data", nil, []string{
			c.instr(seg.Offset, fieldIndent),
			sexpr.Line(fieldIndent, c.bytesLiteral(seg.Data)),
		}, sectionIndent))
		c.pop()
	}
	return blocks
}

func (c *encoder) table(blocks []string, tbl *ir.Table) []string {
	c.push("table " + sigil(tbl.Name))
	defer c.pop()

	blocks = append(blocks, sexpr.Render("table", []string{
		sigil(tbl.Name),
		u32(tbl.Initial),
		u32(tbl.Maximum),
		tbl.ElemType.String(),
	}, nil, sectionIndent))

	for i := range tbl.Segments {
		seg := &tbl.Segments[i]
		names := make([]string, len(seg.Names))
		for j, name := range seg.Names {
			names[j] = sigil(name)
		}
		c.push(fmt.Sprintf("elem[%d]", i))
		blocks = append(blocks, sexpr.Render("elem", nil, []string{
			c.instr(seg.Offset, fieldIndent),
			sexpr.Line(fieldIndent, strings.Join(names, " ")),
		}, sectionIndent))
		c.pop()
	}
	return blocks
}

func (c *encoder) global(g *ir.Global) string {
	c.push("global " + sigil(g.Name))
	defer c.pop()

	typ := ir.TypeName(g.Type)
	if g.Mutable {
		typ = "mut " + typ
	}
	return sexpr.Render("global",
		[]string{sigil(g.Name), "(" + typ + ")"},
		[]string{c.instr(g.Init, fieldIndent)},
		sectionIndent)
}

func funcExport(f *ir.Function) string {
	return sexpr.Render("export", []string{quote(f.Export), "(func " + sigil(f.Name) + ")"}, nil, sectionIndent)
}

func (c *encoder) function(f *ir.Function) string {
	c.push("func " + sigil(f.Name))
	defer c.pop()

	blocks := make([]string, 0, len(f.Params)+len(f.Locals)+2)
	for _, p := range f.Params {
		blocks = append(blocks, sexpr.Line(fieldIndent, "(param "+sigil(p.Name)+" "+ir.TypeName(p.Type)+")"))
	}
	blocks = append(blocks, sexpr.Optional(!f.Result.IsNone(), sexpr.Line(fieldIndent, "(result "+f.Result.String()+")")))
	for _, l := range f.Locals {
		blocks = append(blocks, sexpr.Line(fieldIndent, "(local "+sigil(l.Name)+" "+ir.TypeName(l.Type)+")"))
	}
	blocks = append(blocks, c.instr(f.Body, fieldIndent))

	return sexpr.Render("func", []string{sigil(f.Name)}, blocks, sectionIndent)
}

// bytesLiteral renders data as a string of per-byte hex escapes.
func (c *encoder) bytesLiteral(data []byte) string {
	var b strings.Builder
	b.Grow(len(data)*3 + 2)
	b.WriteByte('"')
	for _, d := range data {
		b.WriteByte('\\')
		if c.options.PadByteEscapes && d < 0x10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.FormatUint(uint64(d), 16))
	}
	b.WriteByte('"')
	return b.String()
}

// quote wraps a name in double quotes without escaping.
func quote(s string) string {
	return `"` + s + `"`
}
