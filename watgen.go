package watgen

import (
	"io"

	"github.com/wippyai/watgen/emitter"
	"github.com/wippyai/watgen/ir"
)

var defaultEmitter = emitter.NewWithDefaults()

// Emit renders m with default options.
func Emit(m *ir.Module) (string, error) {
	return defaultEmitter.Module(m)
}

// Write renders m with default options and writes the text to w.
func Write(w io.Writer, m *ir.Module) error {
	return defaultEmitter.WriteModule(w, m)
}
