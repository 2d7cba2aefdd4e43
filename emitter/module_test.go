package emitter

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	werrors "github.com/wippyai/watgen/errors"
	"github.com/wippyai/watgen/ir"
)

func mustModule(t *testing.T, e *Emitter, m *ir.Module) string {
	t.Helper()
	got, err := e.Module(m)
	if err != nil {
		t.Fatalf("Module failed: %v", err)
	}
	return got
}

func sampleModule() *ir.Module {
	i32 := api.ValueTypeI32
	return &ir.Module{
		Memories: []ir.Memory{{
			Name:    "mem",
			Initial: 1,
			Maximum: 2,
			Segments: []ir.DataSegment{
				{Offset: ir.I32Const(0), Data: []byte("hi")},
			},
		}},
		Tables: []ir.Table{{
			Name:     "tbl",
			Initial:  2,
			Maximum:  2,
			ElemType: ir.RefTypeFuncref,
			Segments: []ir.ElemSegment{
				{Offset: ir.I32Const(0), Names: []string{"add", "main"}},
			},
		}},
		Globals: []ir.Global{
			{Name: "counter", Type: i32, Mutable: true, Init: ir.I32Const(0)},
			{Name: "limit", Type: api.ValueTypeI64, Init: ir.I64Const(100)},
		},
		Funcs: []ir.Function{
			{
				Name:   "add",
				Export: "add",
				Params: []ir.Local{{Name: "a", Type: i32}, {Name: "b", Type: i32}},
				Result: ir.Returns(i32),
				Body: &ir.Binary{
					Op:    ir.OpAdd,
					Type:  i32,
					Left:  &ir.LocalGet{Name: "a"},
					Right: &ir.LocalGet{Name: "b"},
				},
			},
			{
				Name:   "main",
				Export: "run",
				Locals: []ir.Local{{Name: "i", Type: i32}},
				Body: &ir.Block{
					Label: "exit",
					Body: []ir.Instr{&ir.Loop{
						Label: "top",
						Body: []ir.Instr{
							&ir.LocalSet{Name: "i", Value: &ir.Binary{
								Op:    ir.OpAdd,
								Type:  i32,
								Left:  &ir.LocalGet{Name: "i"},
								Right: ir.I32Const(1),
							}},
							&ir.BrIf{
								Target: ir.ToLabel("exit"),
								Cond:   &ir.Eqz{Type: i32, Operand: &ir.LocalGet{Name: "i"}},
							},
							&ir.Br{Target: ir.ToDepth(0)},
						},
					}},
				},
			},
		},
		Start: "main",
	}
}

const sampleText = `(module
 (memory $mem 1 2)
 (export "mem" (memory $mem))
 (data
  (i32.const 0)
  "\68\69"
 )
 (table $tbl 2 2 funcref)
 (elem
  (i32.const 0)
  $add $main
 )
 (global $counter (mut i32)
  (i32.const 0)
 )
 (global $limit (i64)
  (i64.const 100)
 )
 (export "add" (func $add))
 (export "run" (func $main))
 (func $add
  (param $a i32)
  (param $b i32)
  (result i32)
  (i32.add
   (local.get $a)
   (local.get $b)
  )
 )
 (func $main
  (local $i i32)
  (block
   $exit
   (loop $top
    (local.set $i
     (i32.add
      (local.get $i)
      (i32.const 1)
     )
    )
    (br_if $exit
     (i32.eqz
      (local.get $i)
     )
    )
    (br 0)
   )
  )
 )
 (start $main)
)`

func TestModuleFull(t *testing.T) {
	got := mustModule(t, NewWithDefaults(), sampleModule())
	if got != sampleText {
		t.Errorf("got\n%s\nwant\n%s", got, sampleText)
	}
	checkLayout(t, got)
}

func TestModuleEmpty(t *testing.T) {
	if got := mustModule(t, NewWithDefaults(), &ir.Module{}); got != "(module)" {
		t.Errorf("got %q", got)
	}
}

func TestModuleNil(t *testing.T) {
	_, err := NewWithDefaults().Module(nil)
	if !errors.Is(err, werrors.ErrInvalidInput) {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestModuleMemoryWithoutSegments(t *testing.T) {
	m := &ir.Module{Memories: []ir.Memory{{Name: "mem", Initial: 1, Maximum: 2}}}
	want := "(module\n (memory $mem 1 2)\n (export \"mem\" (memory $mem))\n)"
	if got := mustModule(t, NewWithDefaults(), m); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestModuleFunctionWithoutResult(t *testing.T) {
	m := &ir.Module{Funcs: []ir.Function{{
		Name: "f",
		Body: &ir.Drop{Value: ir.I32Const(5)},
	}}}
	want := "(module\n (func $f\n  (drop\n   (i32.const 5)\n  )\n )\n)"
	got := mustModule(t, NewWithDefaults(), m)
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	if strings.Contains(got, "(result") || strings.Contains(got, "(export") {
		t.Errorf("unexpected result or export line:\n%s", got)
	}
}

func TestModuleStart(t *testing.T) {
	without := mustModule(t, NewWithDefaults(), &ir.Module{})
	if strings.Contains(without, "start") {
		t.Errorf("start line without start function:\n%s", without)
	}

	m := &ir.Module{
		Funcs: []ir.Function{{Name: "main", Body: &ir.Block{}}},
		Start: "main",
	}
	got := mustModule(t, NewWithDefaults(), m)
	if strings.Count(got, "(start") != 1 {
		t.Fatalf("expected one start line:\n%s", got)
	}
	if !strings.HasSuffix(got, "\n (start $main)\n)") {
		t.Errorf("start must be the last block argument:\n%s", got)
	}
}

func TestModuleExportsPrecedeBodies(t *testing.T) {
	m := &ir.Module{Funcs: []ir.Function{
		{Name: "a", Export: "first", Body: &ir.Block{}},
		{Name: "b", Body: &ir.Block{}},
		{Name: "c", Export: "third", Body: &ir.Block{}},
	}}
	want := `(module
 (export "first" (func $a))
 (export "third" (func $c))
 (func $a
  (block)
 )
 (func $b
  (block)
 )
 (func $c
  (block)
 )
)`
	if got := mustModule(t, NewWithDefaults(), m); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestModuleTableSegments(t *testing.T) {
	m := &ir.Module{Tables: []ir.Table{{
		Name:     "t",
		Initial:  0,
		Maximum:  4,
		ElemType: ir.RefTypeExternref,
		Segments: []ir.ElemSegment{
			{Offset: ir.I32Const(0), Names: []string{"f"}},
			{Offset: &ir.GlobalGet{Name: "base"}, Names: []string{"g", "h", "i"}},
		},
	}}}
	want := `(module
 (table $t 0 4 externref)
 (elem
  (i32.const 0)
  $f
 )
 (elem
  (global.get $base)
  $g $h $i
 )
)`
	if got := mustModule(t, NewWithDefaults(), m); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestBytesLiteral(t *testing.T) {
	data := []byte{0x00, 0x0a, 0x10, 0xff, 'A'}
	tests := []struct {
		name string
		want string
		opts Options
	}{
		{"unpadded", `"\0\a\10\ff\41"`, DefaultOptions()},
		{"padded", `"\00\0a\10\ff\41"`, Options{PadByteEscapes: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newEncoder(tt.opts).bytesLiteral(data); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}

	if got := newEncoder(DefaultOptions()).bytesLiteral(nil); got != `""` {
		t.Errorf("empty data = %s", got)
	}
}

func TestModuleDataPadding(t *testing.T) {
	m := &ir.Module{Memories: []ir.Memory{{
		Name:     "m",
		Initial:  1,
		Maximum:  1,
		Segments: []ir.DataSegment{{Offset: ir.I32Const(8), Data: []byte{1, 2}}},
	}}}
	got := mustModule(t, New(Options{PadByteEscapes: true}), m)
	if !strings.Contains(got, "\n  \"\\01\\02\"\n") {
		t.Errorf("padded escapes missing:\n%s", got)
	}
}

func TestModuleDeterministic(t *testing.T) {
	e := NewWithDefaults()
	m := sampleModule()
	if mustModule(t, e, m) != mustModule(t, e, m) {
		t.Error("rendering the same module twice differs")
	}
}

func TestModuleConcurrent(t *testing.T) {
	e := NewWithDefaults()
	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = e.Module(sampleModule())
		}(i)
	}
	wg.Wait()
	for i, r := range results {
		if r != sampleText {
			t.Errorf("goroutine %d rendered different text", i)
		}
	}
}

func TestModuleUnknownInstructionPath(t *testing.T) {
	tests := []struct {
		name string
		m    *ir.Module
		path []string
	}{
		{
			name: "global_init",
			m:    &ir.Module{Globals: []ir.Global{{Name: "g", Type: api.ValueTypeI32, Init: unknownInstr{}}}},
			path: []string{"global $g"},
		},
		{
			name: "data_offset",
			m: &ir.Module{Memories: []ir.Memory{{Name: "m", Segments: []ir.DataSegment{
				{Offset: ir.I32Const(0)},
				{Offset: unknownInstr{}},
			}}}},
			path: []string{"memory $m", "data[1]"},
		},
		{
			name: "elem_offset",
			m: &ir.Module{Tables: []ir.Table{{Name: "t", Segments: []ir.ElemSegment{
				{Offset: unknownInstr{}},
			}}}},
			path: []string{"table $t", "elem[0]"},
		},
		{
			name: "func_body",
			m: &ir.Module{Funcs: []ir.Function{
				{Name: "ok", Body: &ir.Block{}},
				{Name: "bad", Body: &ir.Block{Body: []ir.Instr{unknownInstr{}}}},
			}},
			path: []string{"func $bad"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewWithDefaults().Module(tt.m)
			if got != "" {
				t.Errorf("expected no partial output, got %q", got)
			}
			var e *werrors.Error
			if !errors.As(err, &e) {
				t.Fatalf("expected *errors.Error, got %v", err)
			}
			if e.Kind != werrors.KindUnknownInstruction {
				t.Errorf("Kind = %v", e.Kind)
			}
			if strings.Join(e.Path, "|") != strings.Join(tt.path, "|") {
				t.Errorf("Path = %v, want %v", e.Path, tt.path)
			}
		})
	}
}

func TestWriteModule(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWithDefaults().WriteModule(&buf, sampleModule()); err != nil {
		t.Fatalf("WriteModule failed: %v", err)
	}
	if buf.String() != sampleText {
		t.Errorf("written text differs:\n%s", buf.String())
	}

	buf.Reset()
	bad := &ir.Module{Funcs: []ir.Function{{Name: "f", Body: unknownInstr{}}}}
	if err := NewWithDefaults().WriteModule(&buf, bad); err == nil {
		t.Fatal("expected error")
	}
	if buf.Len() != 0 {
		t.Errorf("failed render wrote %d bytes", buf.Len())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestWriteModuleWriterError(t *testing.T) {
	err := NewWithDefaults().WriteModule(failingWriter{}, &ir.Module{})
	var e *werrors.Error
	if !errors.As(err, &e) || e.Kind != werrors.KindIO {
		t.Fatalf("expected io error, got %v", err)
	}
	if e.Cause == nil || e.Cause.Error() != "closed" {
		t.Errorf("Cause = %v", e.Cause)
	}
}

func TestLoggerRecordsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	if _, err := NewWithDefaults().Module(sampleModule()); err != nil {
		t.Fatalf("Module failed: %v", err)
	}
	if logs.FilterMessage("module emitted").Len() != 1 {
		t.Errorf("expected one debug entry, got %v", logs.All())
	}

	bad := &ir.Module{Globals: []ir.Global{{Name: "g", Init: unknownInstr{}}}}
	if _, err := NewWithDefaults().Module(bad); err == nil {
		t.Fatal("expected error")
	}
	failures := logs.FilterMessage("emit aborted").All()
	if len(failures) != 1 {
		t.Fatalf("expected one error entry, got %d", len(failures))
	}
	if failures[0].Level != zapcore.ErrorLevel {
		t.Errorf("Level = %v", failures[0].Level)
	}
}

// checkLayout verifies balanced parens and that every line is indented by
// its nesting depth, closing lines one level less.
func checkLayout(t *testing.T, text string) {
	t.Helper()
	depth := 0
	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		lead := len(line) - len(trimmed)
		want := depth
		if strings.HasPrefix(trimmed, ")") {
			want = depth - 1
		}
		if lead != want {
			t.Errorf("line %d %q: indent %d, want %d", i+1, line, lead, want)
		}
		depth += strings.Count(line, "(") - strings.Count(line, ")")
		if depth < 0 {
			t.Fatalf("line %d: unbalanced close", i+1)
		}
	}
	if depth != 0 {
		t.Errorf("unbalanced parens: final depth %d", depth)
	}
}
