package interp

import (
	"strings"

	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/token"
	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/value"
)

// RestoreData resets the DATA cursor to the start of the program, the
// behavior of RESTORE with no argument.
func (in *Instance) RestoreData() {
	in.dataLine = 0
	in.dataPos = 0
	in.dataLive = false
}

// RestoreDataAt resets the DATA cursor to just before line n, so the next
// READ resumes scanning for DATA starting at n.
func (in *Instance) RestoreDataAt(n int) {
	in.dataLine = n - 1
	in.dataPos = 0
	in.dataLive = false
}

// NextDatum returns the next value from the program's DATA statements,
// reparsed as a string or a number depending on wantStr (the type of the
// variable READ is assigning into), or an OutOfData *Error once the
// program has no more DATA left.
func (in *Instance) NextDatum(wantStr bool) (value.Value, error) {
	raw, err := in.nextRawDatum()
	if err != nil {
		return value.Value{}, err
	}
	if wantStr {
		return value.Str(raw), nil
	}
	return value.Num(fnVal(raw)), nil
}

// nextRawDatum finds and returns the next comma-delimited DATA item as
// trimmed text, advancing the DATA cursor past it. It scans forward
// through the program's lines, by ascending line number, the way
// find_next_data walks the token buffer in the original.
func (in *Instance) nextRawDatum() (string, error) {
	for {
		if !in.dataLive {
			num, tokens, ok := in.Program.Next(in.dataLine)
			found := false
			for ok {
				if idx := findDataToken(tokens); idx >= 0 {
					in.dataLine = num
					in.dataPos = idx
					in.dataLive = true
					found = true
					break
				}
				num, tokens, ok = in.Program.Next(num)
			}
			if !found {
				return "", Err(OutOfData)
			}
		}

		tokens, ok := in.Program.Find(in.dataLine)
		if !ok {
			in.dataLive = false
			continue
		}
		c := &Cursor{LineNum: in.dataLine, Tokens: tokens, Pos: in.dataPos}
		c.skipSpaces()
		if c.atEnd() {
			in.dataLive = false
			continue
		}

		item := readRawDataItem(c)
		in.dataPos = c.Pos
		c.skipSpaces()
		if c.peek() == ',' {
			c.next()
			in.dataPos = c.Pos
		} else {
			in.dataLive = false
		}
		return item, nil
	}
}

// findDataToken returns the offset just after the DATA opcode in tokens,
// or -1 if the line has no DATA statement. DATA always commandeers the
// rest of its physical line, so at most one occurrence per line matters.
func findDataToken(tokens []byte) int {
	for i, b := range tokens {
		if token.Opcode(b) == token.DATA {
			return i + 1
		}
	}
	return -1
}

// readRawDataItem reads one comma-delimited DATA item starting at c,
// honoring an optional surrounding quote pair, and leaves the cursor at
// the delimiting comma (or end of line).
func readRawDataItem(c *Cursor) string {
	if c.peek() == '"' {
		return parseStringLiteral(c)
	}
	var buf []byte
	for !c.atEnd() && c.peek() != ',' {
		buf = append(buf, c.next())
	}
	return strings.TrimSpace(string(buf))
}
