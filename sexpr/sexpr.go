// Package sexpr renders parenthesized expressions with one-space-per-level
// indentation.
//
// An expression has a head symbol, inline arguments printed on the head's
// line, and block arguments printed one per line below it. Block arguments are
// already-rendered text and are never re-indented: a caller rendering at level
// n passes children rendered at level n+1.
package sexpr

import "strings"

// Expr is a single parenthesized expression. Empty strings in Inline and Block
// are absent entries and are skipped.
type Expr struct {
	Head   string
	Inline []string
	Block  []string
}

// Render returns the expression indented at the given level. With no block
// arguments the closing paren follows the head's line; otherwise each block
// argument gets its own line and the closing paren is placed on a line of its
// own at the expression's indentation.
func (e Expr) Render(indent int) string {
	var b strings.Builder

	b.WriteString(Indent(indent))
	b.WriteByte('(')
	b.WriteString(e.Head)

	for _, arg := range e.Inline {
		if arg == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(arg)
	}

	blocks := 0
	for _, arg := range e.Block {
		if arg == "" {
			continue
		}
		b.WriteByte('\n')
		b.WriteString(arg)
		blocks++
	}

	if blocks > 0 {
		b.WriteByte('\n')
		b.WriteString(Indent(indent))
	}
	b.WriteByte(')')

	return b.String()
}

// Render is shorthand for Expr{head, inline, block}.Render(indent).
func Render(head string, inline, block []string, indent int) string {
	return Expr{Head: head, Inline: inline, Block: block}.Render(indent)
}

// Indent returns n spaces.
func Indent(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// Line pre-indents a block argument built directly by the caller.
func Line(indent int, text string) string {
	return Indent(indent) + text
}

// Optional returns s when ok is set and the absent entry otherwise.
func Optional(ok bool, s string) string {
	if !ok {
		return ""
	}
	return s
}
