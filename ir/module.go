package ir

import "github.com/tetratelabs/wazero/api"

// Module is the top-level unit rendered by the emitter.
type Module struct {
	Start    string // empty when the module has no start function
	Memories []Memory
	Tables   []Table
	Globals  []Global
	Funcs    []Function
}

// HasStart reports whether the module declares a start function.
func (m *Module) HasStart() bool {
	return m.Start != ""
}

// Memory is a linear memory declaration. Every memory is exported under its
// own name.
type Memory struct {
	Name     string
	Segments []DataSegment
	Initial  uint32
	Maximum  uint32
}

// DataSegment initializes memory bytes at Offset.
type DataSegment struct {
	Offset Instr
	Data   []byte
}

// Table is a table declaration.
type Table struct {
	Name     string
	Segments []ElemSegment
	Initial  uint32
	Maximum  uint32
	ElemType RefType
}

// ElemSegment places the named functions into a table at Offset.
type ElemSegment struct {
	Offset Instr
	Names  []string
}

// Global is a global variable with a constant initializer.
type Global struct {
	Init    Instr
	Name    string
	Type    api.ValueType
	Mutable bool
}

// Local is a named parameter or local variable.
type Local struct {
	Name string
	Type api.ValueType
}

// Function is a function definition. A non-empty Export makes it visible to
// the host under that name.
type Function struct {
	Body   Instr
	Name   string
	Export string
	Params []Local
	Locals []Local
	Result ResultType
}

// Exported reports whether the function declares an export name.
func (f *Function) Exported() bool {
	return f.Export != ""
}
