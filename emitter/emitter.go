package emitter

import (
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/watgen/errors"
	"github.com/wippyai/watgen/ir"
)

// Options configures emitter behavior.
type Options struct {
	// PadByteEscapes renders every data segment byte as exactly two hex
	// digits (\0a). When unset a byte is rendered with as many digits as its
	// value needs (\a).
	PadByteEscapes bool
}

// DefaultOptions returns default emitter configuration.
func DefaultOptions() Options {
	return Options{}
}

// Emitter renders modules and instruction trees to text.
type Emitter struct {
	options Options
}

// New creates a new Emitter with the given options.
func New(opts Options) *Emitter {
	return &Emitter{options: opts}
}

// NewWithDefaults creates a new Emitter with default options.
func NewWithDefaults() *Emitter {
	return New(DefaultOptions())
}

// Options returns the configuration.
func (e *Emitter) Options() Options {
	return e.options
}

// Module renders m as a single (module ...) expression.
func (e *Emitter) Module(m *ir.Module) (string, error) {
	if m == nil {
		return "", errors.InvalidInput("nil module")
	}

	enc := newEncoder(e.options)
	text := enc.module(m)
	if enc.err != nil {
		logFailure(enc.err)
		return "", enc.err
	}

	Logger().Debug("module emitted",
		zap.Int("memories", len(m.Memories)),
		zap.Int("tables", len(m.Tables)),
		zap.Int("globals", len(m.Globals)),
		zap.Int("funcs", len(m.Funcs)),
		zap.Bool("start", m.HasStart()),
		zap.Int("bytes", len(text)))
	return text, nil
}

// WriteModule renders m and writes the text to w. Nothing is written when
// rendering fails.
func (e *Emitter) WriteModule(w io.Writer, m *ir.Module) error {
	text, err := e.Module(m)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return errors.Write(err)
	}
	return nil
}

// Instr renders a single instruction tree with its head at the given
// indentation level.
func (e *Emitter) Instr(in ir.Instr, indent int) (string, error) {
	enc := newEncoder(e.options)
	text := enc.instr(in, indent)
	if enc.err != nil {
		logFailure(enc.err)
		return "", enc.err
	}
	return text, nil
}

func logFailure(err *errors.Error) {
	Logger().Error("emit aborted",
		zap.Strings("path", err.Path),
		zap.String("node", err.Node),
		zap.Error(err))
}
