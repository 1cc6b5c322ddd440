package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/interp"
	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/tokenizer"
)

// REPL drives an interp.Instance the way repl.c's repl() function drives
// the original's global state: read a line, decide whether it is a
// numbered program line or a direct command, act on it, print the
// "READY." prompt, and loop until input runs out.
type REPL struct {
	in  *interp.Instance
	out io.Writer
}

// New returns a REPL over an already-constructed Instance. out should be
// the same writer passed to interp.WithOutput, since prompts and error
// text share the same stream as PRINT output.
func New(in *interp.Instance, out io.Writer) *REPL {
	return &REPL{in: in, out: out}
}

// Run reads and dispatches lines until the input stream ends.
func (r *REPL) Run() {
	for {
		fmt.Fprint(r.out, "READY.\n")
		line, ok := r.in.ReadLine()
		if !ok {
			return
		}
		r.dispatch(line)
	}
}

// LoadAndRun tokenizes and stores lines as a whole program (skipping any
// line with no leading line number, as load_file does) and then runs it,
// the behavior of launching the interpreter with a filename argument.
func (r *REPL) LoadAndRun(lines []string) {
	for _, raw := range lines {
		num, rest, ok := interp.ParseLineNumber(raw)
		if !ok {
			continue
		}
		_ = r.in.Program.Insert(num, tokenizer.Tokenize(rest))
	}
	r.reportRun(r.in.Run(0))
}

// dispatch classifies one line of input: blank lines are ignored, a
// leading line number inserts or deletes a stored program line (an empty
// body deletes it), and anything else is executed immediately.
func (r *REPL) dispatch(raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return
	}

	if num, rest, ok := interp.ParseLineNumber(raw); ok {
		if rest == "" {
			r.in.Program.Delete(num)
			r.in.InvalidateEditState()
			return
		}
		if err := r.in.Program.Insert(num, tokenizer.Tokenize(rest)); err != nil {
			fmt.Fprintf(r.out, "?%s\n", interp.Err(interp.OutOfMemory).Error())
			return
		}
		r.in.InvalidateEditState()
		return
	}

	tokens := tokenizer.Tokenize(raw)
	r.reportRun(r.in.ExecuteDirect(tokens))
}

// reportRun prints the REPL-visible consequence of a Run/ExecuteDirect
// result: nothing on success, "BREAK IN <line>" on STOP, "?<CODE> ERROR
// [IN <line>]" on a typed interpreter error, and "?FILE NOT FOUND" /
// "?FILE ERROR" for the two LOAD/SAVE filesystem failure modes.
func (r *REPL) reportRun(err error) {
	if err == nil {
		return
	}
	if ss, ok := err.(*interp.StopSignal); ok {
		fmt.Fprintf(r.out, "BREAK IN %d\n", ss.Line)
		return
	}
	if be, ok := err.(*interp.Error); ok {
		if be.Line >= 0 {
			fmt.Fprintf(r.out, "?%s IN %d\n", be.Error(), be.Line)
		} else {
			fmt.Fprintf(r.out, "?%s\n", be.Error())
		}
		return
	}
	if IsNotExist(err) {
		fmt.Fprint(r.out, "?FILE NOT FOUND\n")
		return
	}
	fmt.Fprint(r.out, "?FILE ERROR\n")
}
