package interp

// StopSignal is the error Run/ExecuteDirect return when a STOP statement
// executes. The REPL catches it (errors.As) to print "BREAK IN <line>"
// rather than a "?... ERROR" line; the program stays resumable via CONT.
type StopSignal struct{ Line int }

func (s *StopSignal) Error() string { return "break" }

// haltSignal is what END produces: it unwinds the driver loop with no
// REPL-visible error at all.
type haltSignal struct{}

func (haltSignal) Error() string { return "end" }

var errHalt error = haltSignal{}

// IsHalt reports whether err is the sentinel END produces.
func IsHalt(err error) bool {
	_, ok := err.(haltSignal)
	return ok
}

// Run clears variables/arrays/stacks and executes the stored program,
// starting at line start (or the lowest-numbered stored line if start is
// 0). It returns nil on a clean END or falling off the last line,
// *StopSignal on STOP, or a *Error stamped with the line it occurred on.
func (in *Instance) Run(start int) error {
	in.Reset()
	num, tokens, ok := in.firstRunLine(start)
	if !ok {
		return nil
	}
	in.running = true
	in.curLine = num
	in.cur = Cursor{LineNum: num, Tokens: tokens}
	return in.runLoop()
}

func (in *Instance) firstRunLine(start int) (int, []byte, bool) {
	if start > 0 {
		if tokens, ok := in.Program.Find(start); ok {
			return start, tokens, true
		}
		return 0, nil, false
	}
	return in.Program.First()
}

// ExecuteDirect tokenizes-already-done line typed at the "READY." prompt.
// If it doesn't jump into the stored program (an ordinary LET, PRINT,
// and so on), it runs once and returns; if it does (GOTO, GOSUB, RUN,
// CONT), the driver loop takes over from there exactly as it would
// mid-program.
func (in *Instance) ExecuteDirect(tokens []byte) error {
	in.curLine = -1
	in.cur = Cursor{LineNum: -1, Tokens: tokens}
	err := in.ExecuteLine(&in.cur)
	if err != nil {
		return in.translate(err)
	}
	if in.curLine == -1 {
		return nil
	}
	in.running = true
	return in.runLoop()
}

// runLoop is the fetch-execute-advance driver shared by Run and any
// in-program or direct-mode jump that hands control back to it. A
// statement that jumps (GOTO/GOSUB/RETURN/NEXT/ON/RUN/CONT) overwrites
// in.cur and in.curLine directly; comparing curLine before and after
// ExecuteLine is how the loop tells a jump to another line from an
// ordinary fallthrough, replacing the original's pointer-into-program-text
// comparison. A jump back into the line being run (a NEXT or GOTO that
// targets the same line) is resumed by ExecuteLine itself.
func (in *Instance) runLoop() error {
	defer func() { in.running = false }()
	for {
		startLine := in.curLine
		if err := in.ExecuteLine(&in.cur); err != nil {
			return in.translate(err)
		}
		if in.curLine != startLine {
			continue
		}
		num, tokens, ok := in.Program.Next(in.curLine)
		if !ok {
			return nil
		}
		in.curLine = num
		in.cur = Cursor{LineNum: num, Tokens: tokens}
	}
}

// translate turns a raw error from statement execution into what the
// caller should see: nil for END, the StopSignal as-is for STOP, a
// *Error stamped with the current line for a typed interpreter error,
// and anything else (e.g. an I/O error from LOAD/SAVE) unchanged.
func (in *Instance) translate(err error) error {
	if err == nil || IsHalt(err) {
		return nil
	}
	if _, ok := err.(*StopSignal); ok {
		return err
	}
	if be, ok := err.(*Error); ok {
		return be.WithLine(in.curLine)
	}
	return err
}

// ExecuteLine runs every colon-separated statement starting at c in
// order, stopping early if one jumps (moves execution to a different
// line) or fails. A jump within the same line has already repositioned
// c, so execution carries on from there.
func (in *Instance) ExecuteLine(c *Cursor) error {
	for {
		c.skipSpaces()
		if c.atEnd() {
			return nil
		}
		startLine := in.curLine
		jumped, err := in.execStatement(c)
		if err != nil {
			return err
		}
		if in.curLine != startLine {
			return nil
		}
		if jumped {
			continue
		}
		c.skipSpaces()
		if c.peek() == ':' {
			c.next()
			continue
		}
		return nil
	}
}
