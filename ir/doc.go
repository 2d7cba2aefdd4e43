// Package ir defines the module representation that watgen renders to text.
//
// A Module is a finished, read-only snapshot built by an upstream compiler
// stage: memories with data segments, tables with element segments, globals,
// functions and an optional start function. Function bodies, global
// initializers and segment offsets are instruction trees made of the Instr
// variants declared in this package.
//
// Numeric value types are wazero api.ValueType values, so a module built for
// watgen shares its type vocabulary with host function registries:
//
//	body := &ir.Binary{
//		Op:    ir.OpAdd,
//		Type:  api.ValueTypeI32,
//		Left:  ir.I32Const(1),
//		Right: ir.I32Const(2),
//	}
//
// The package performs no validation. Names are expected to resolve, literal
// text is expected to be well formed, and instruction trees are expected to be
// type correct.
package ir
