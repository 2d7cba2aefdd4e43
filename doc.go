// Package watgen renders compiled WebAssembly modules as text.
//
// It is the last stage of a compiler pipeline: the front end builds an
// ir.Module (memories, tables, globals, functions and their instruction
// trees) and watgen turns it into the folded S-expression text format that
// WebAssembly assemblers consume.
//
// # Architecture Overview
//
//	watgen/         Emit convenience entry point
//	├── ir/         Module and instruction representation
//	├── emitter/    Instruction encoders, dispatcher and section walk
//	├── sexpr/      Generic indented expression printer
//	└── errors/     Structured error types
//
// # Quick Start
//
//	mod := &ir.Module{
//		Funcs: []ir.Function{{
//			Name:   "answer",
//			Export: "answer",
//			Result: ir.Returns(api.ValueTypeI32),
//			Body:   ir.I32Const(42),
//		}},
//	}
//
//	text, err := watgen.Emit(mod)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(text)
//
// # Guarantees
//
// Rendering is deterministic: the same module always yields byte-identical
// text. The module is never modified, and concurrent calls on independent
// modules need no synchronization. The input is trusted; names, literals and
// typing are not validated. The only failure is an instruction node with no
// encoder, which aborts emission without partial output.
package watgen
