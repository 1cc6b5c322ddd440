// Package tokenizer crunches BASIC source text into the single-byte
// opcode stream the interpreter executes, and expands it back to text
// for LIST/SAVE.
package tokenizer

import (
	"strings"

	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/token"
)

// Tokenize crunches a single source line (line number already stripped)
// into a byte stream terminated by one NUL. Outside string literals,
// DATA payloads, and REM comments, whitespace is discarded and maximal
// alphabetic runs (the `$` sigil included) are matched against the
// keyword table; a hit emits one opcode byte, a miss copies the run
// verbatim. Numeric literals and single-character punctuation are passed
// through byte-for-byte. Blanks between a DATA or REM opcode and its
// payload are dropped; the payload itself is copied verbatim.
func Tokenize(line string) []byte {
	out := make([]byte, 0, len(line)+1)
	s := []byte(line)
	i := 0
	inString, inData, inRem := false, false, false

	for i < len(s) {
		c := s[i]

		if !inString && !inData && !inRem && (c == ' ' || c == '\t') {
			i++
			continue
		}

		if c == '"' {
			out = append(out, c)
			inString = !inString
			i++
			continue
		}

		if inString || inData || inRem {
			out = append(out, c)
			i++
			continue
		}

		if c == '\'' {
			out = append(out, byte(token.REM))
			inRem = true
			i++
			for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
				i++
			}
			continue
		}

		if c == '?' {
			out = append(out, byte(token.PRINT))
			i++
			continue
		}

		if isAlpha(c) {
			start := i
			for i < len(s) && (isAlpha(s[i]) || s[i] == '$') {
				i++
			}
			word := s[start:i]
			upword := strings.ToUpper(string(word))
			if op, ok := token.Lookup(upword); ok {
				out = append(out, byte(op))
				switch op {
				case token.DATA:
					inData = true
				case token.REM:
					inRem = true
				}
				for (inData || inRem) && i < len(s) && (s[i] == ' ' || s[i] == '\t') {
					i++
				}
			} else {
				out = append(out, word...)
			}
			continue
		}

		if isDigit(c) || (c == '.' && i+1 < len(s) && isDigit(s[i+1])) {
			for i < len(s) && isNumChar(s, i) {
				out = append(out, s[i])
				i++
			}
			continue
		}

		out = append(out, c)
		i++
	}

	out = append(out, 0)
	return out
}

func isNumChar(s []byte, i int) bool {
	c := s[i]
	if isDigit(c) || c == '.' || c == 'E' || c == 'e' {
		return true
	}
	if c == '+' || c == '-' {
		return i > 0 && (s[i-1] == 'E' || s[i-1] == 'e')
	}
	return false
}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

// Detokenize expands a tokenized line back into displayable text:
// opcode bytes become their canonical uppercase keyword plus one
// trailing space, everything else is copied verbatim. tokens may or may
// not include the trailing NUL; if present it is not included in the
// output.
func Detokenize(tokens []byte) string {
	var b strings.Builder
	for _, t := range tokens {
		if t == 0 {
			break
		}
		if t >= token.FirstToken {
			name := token.Name(token.Opcode(t))
			if name != "" {
				b.WriteString(name)
				b.WriteByte(' ')
				continue
			}
		}
		b.WriteByte(t)
	}
	return b.String()
}
