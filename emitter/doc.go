// Package emitter renders an ir.Module as WebAssembly text.
//
// Rendering is a pure walk over a read-only module snapshot. Sections are
// emitted in a fixed order:
//
//	memories   (memory $m init max), its export, one (data ...) per segment
//	tables     (table $t init max elemtype), one (elem ...) per segment
//	globals    (global $g (mut? type) init)
//	exports    (export "name" (func $f)) for every exported function
//	functions  params, result, locals and body of every function
//	start      (start $f) when the module declares one
//
// Instruction trees are rendered in folded form, one instruction per line,
// children indented one space deeper than their parent:
//
//	(i32.add
//	 (i32.const 1)
//	 (i32.const 2)
//	)
//
// An instruction node the dispatcher does not recognize aborts the whole
// emission with an errors.KindUnknownInstruction error; no partial text is
// returned.
//
// # Thread Safety
//
// Emitter holds only its Options and may be shared between goroutines.
package emitter
