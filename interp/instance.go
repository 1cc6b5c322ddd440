// Package interp is the interpreter engine: expression evaluator,
// statement dispatcher, execution driver, and typed error model, all as
// methods on a single owning Instance that the REPL drives by exclusive
// reference: one aggregate constructed through an Option slice (New),
// with every subsystem (the statement dispatcher's Run, file access,
// load/save) implemented as methods on it rather than free functions
// over package-level state. No process-wide singleton.
package interp

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/internal/ngi"
	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/program"
	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/vars"
)

// maxStackDepth is the FOR and GOSUB stack cap (26 frames, one per
// letter, preserved from the original).
const maxStackDepth = 26

// forFrame is one FOR/NEXT loop stack entry.
type forFrame struct {
	ret   Cursor
	line  int
	v     vars.Key
	limit float64
	step  float64
}

// gosubFrame is one GOSUB/RETURN stack entry.
type gosubFrame struct {
	ret  Cursor
	line int
}

// Instance is the interpreter's full mutable state: program store,
// symbol tables, control stacks, DATA cursor, CONT snapshot, RNG state,
// and I/O. Zero value is not usable; construct with New.
type Instance struct {
	Program *program.Store
	Vars    *vars.Simple
	Arrays  *vars.Arrays

	out   io.Writer
	ew    *ngi.ErrWriter // sticky-error wrapper around out, used by writeOut
	in    *bufio.Scanner
	files FileIO

	forStack   []forFrame
	gosubStack []gosubFrame

	dataLine int  // line last scanned for DATA, 0 before any READ/RESTORE
	dataPos  int  // offset into that line's tokens of the next item
	dataLive bool // true: dataLine/dataPos sit mid-statement, ready for the next item

	running bool
	curLine int // -1 in direct mode
	cur     Cursor

	haveCont bool
	contLine int
	contCur  Cursor

	col int // terminal column (trmpos), used by PRINT's comma/TAB/POS

	rndState  uint32
	rndHasRun bool

	maxProgramSize int

	stopLine int // line STOP last fired on; "BREAK IN" is printed from StopSignal.Line
}

// Option configures an Instance at construction time: a function that
// mutates the Instance and may fail.
type Option func(*Instance) error

// WithOutput directs PRINT/LIST/error output to w. There is no default
// output: New fails if this option is omitted.
func WithOutput(w io.Writer) Option {
	return func(in *Instance) error {
		if w == nil {
			return errors.New("interp: nil output writer")
		}
		in.out = w
		return nil
	}
}

// WithInput reads INPUT lines from r. There is no default input: New
// fails if this option is omitted.
func WithInput(r io.Reader) Option {
	return func(in *Instance) error {
		if r == nil {
			return errors.New("interp: nil input reader")
		}
		in.in = bufio.NewScanner(r)
		in.in.Buffer(make([]byte, 0, 4096), 1<<20)
		return nil
	}
}

// WithMaxProgramSize bounds the line store's buffer, overriding
// program.DefaultMaxSize.
func WithMaxProgramSize(n int) Option {
	return func(in *Instance) error {
		if n <= 0 {
			return errors.Errorf("interp: invalid max program size %d", n)
		}
		in.maxProgramSize = n
		return nil
	}
}

// New returns a ready-to-run Instance, applying opts in order. An error
// from any option aborts construction.
func New(opts ...Option) (*Instance, error) {
	in := &Instance{
		Vars:           vars.NewSimple(),
		Arrays:         vars.NewArrays(),
		curLine:        -1,
		rndState:       12345,
		maxProgramSize: program.DefaultMaxSize,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(in); err != nil {
			return nil, errors.Wrap(err, "interp: applying option")
		}
	}
	if in.out == nil {
		return nil, errors.New("interp: no output configured")
	}
	if in.in == nil {
		return nil, errors.New("interp: no input configured")
	}
	in.ew = ngi.NewErrWriter(in.out)
	in.Program = program.NewSize(in.maxProgramSize)
	return in, nil
}

// FreeBytes reports the space left in the program store, backing the
// FRE() built-in.
func (in *Instance) FreeBytes() int {
	return in.maxProgramSize - in.Program.Len()
}

// Column reports the current terminal column, backing the POS() built-in.
func (in *Instance) Column() int {
	return in.col
}

// Reset clears variables, arrays, and the control stacks, the shared
// tail of NEW, RUN, and CLEAR.
func (in *Instance) Reset() {
	in.Vars.Reset()
	in.Arrays.Reset()
	in.forStack = in.forStack[:0]
	in.gosubStack = in.gosubStack[:0]
	in.dataLine = 0
	in.dataPos = 0
	in.dataLive = false
}

// New program: additionally empties the line store and drops the CONT
// snapshot, matching new_program() in the original.
func (in *Instance) NewProgram() {
	in.Reset()
	in.Program.Clear()
	in.curLine = -1
	in.running = false
	in.haveCont = false
}

// InvalidateEditState drops the CONT snapshot and resets the DATA
// cursor to the start of the program. It must be called after every
// program-line insertion or deletion: CONT is only valid to resume a
// STOPped program that hasn't been edited since, and a line edit can
// shift which DATA statements precede any given READ.
func (in *Instance) InvalidateEditState() {
	in.haveCont = false
	in.dataLine = 0
	in.dataPos = 0
	in.dataLive = false
}
