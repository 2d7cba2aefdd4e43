// Package errors provides the structured error type returned by watgen.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the section path being emitted, the Go type
// of the offending node and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEmit, errors.KindUnknownInstruction).
//		Path("func $main", "body").
//		Node("*ir.Select").
//		Detail("no encoder for instruction").
//		Build()
//
// Or use the convenience constructors:
//
//	err := errors.UnknownInstruction(path, node)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
