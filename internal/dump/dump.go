// Package dump prints the interpreter's internal state for troubleshooting,
// activated behind cmd/basic's --debug flag. State renders through a
// pretty-printer rather than a hand-written byte dump, since the
// interpreter's state is a tree of Go structs and maps rather than one
// flat memory block.
package dump

import (
	"io"

	"github.com/k0kubun/pp/v3"

	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/interp"
)

// Instance pretty-prints in's full state to w: program store, variable
// and array tables, control stacks, and the DATA cursor, unexported
// fields included.
func Instance(w io.Writer, in *interp.Instance) {
	p := pp.New()
	p.SetOutput(w)
	p.Println(in)
}

// Error pretty-prints err with its full chain of wrapped causes, the
// form --debug wants instead of the one-line message a non-debug run
// prints to stderr.
func Error(w io.Writer, err error) {
	p := pp.New()
	p.SetOutput(w)
	p.Printf("%+v\n", err)
}
