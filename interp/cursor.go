package interp

import "github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/token"

// Cursor names the next byte the interpreter will consume: which line
// (by number, -1 in direct mode) and an offset into that line's token
// bytes. It is passed explicitly through the evaluator and dispatcher
// instead of living behind a global text pointer, per the tokenized
// live-cursor re-architecture note.
type Cursor struct {
	LineNum int
	Tokens  []byte
	Pos     int
}

// atEnd reports whether the cursor has consumed every byte up to (and
// not including) the trailing NUL, i.e. whether Peek would return 0.
func (c *Cursor) atEnd() bool {
	return c.Pos >= len(c.Tokens) || c.Tokens[c.Pos] == 0
}

// peek returns the byte at the cursor without advancing it, or 0 at end
// of line.
func (c *Cursor) peek() byte {
	if c.atEnd() {
		return 0
	}
	return c.Tokens[c.Pos]
}

// peekOpcode returns the byte at the cursor as a token.Opcode, for
// callers comparing against opcode constants.
func (c *Cursor) peekOpcode() token.Opcode {
	return token.Opcode(c.peek())
}

// next consumes and returns the byte at the cursor, or 0 at end of line
// without advancing further.
func (c *Cursor) next() byte {
	if c.atEnd() {
		return 0
	}
	b := c.Tokens[c.Pos]
	c.Pos++
	return b
}

// unget steps the cursor back one byte; used where the evaluator needs a
// single byte of lookahead it decided not to consume.
func (c *Cursor) unget() {
	if c.Pos > 0 {
		c.Pos--
	}
}

// skipSpaces advances past run of plain space/tab bytes.
func (c *Cursor) skipSpaces() {
	for c.peek() == ' ' || c.peek() == '\t' {
		c.next()
	}
}

// match consumes the next byte (after skipping spaces) if it equals b,
// reporting whether it did.
func (c *Cursor) match(b byte) bool {
	c.skipSpaces()
	if c.peek() == b {
		c.next()
		return true
	}
	return false
}

// matchOpcode consumes the next byte (after skipping spaces) if it
// equals op, reporting whether it did.
func (c *Cursor) matchOpcode(op token.Opcode) bool {
	return c.match(byte(op))
}

// skipToEOL discards the remainder of the line (used by REM and DATA at
// execution time, and to abandon the false branch of IF).
func (c *Cursor) skipToEOL() {
	for !c.atEnd() {
		c.next()
	}
}

// snapshot captures the cursor's current position for a FOR or GOSUB
// stack frame.
func (c *Cursor) snapshot() Cursor {
	return *c
}
