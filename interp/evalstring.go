package interp

import (
	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/token"
	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/value"
)

// EvalString evaluates the parallel string sub-language: literals,
// CHR$/STR$/LEFT$/RIGHT$/MID$, string variables and arrays. It has no
// precedence chain of its own, since BASIC has no string operators
// beyond these functions and simple assignment, so it is a flat primary
// evaluator rather than a descent through exprOr et al.
func (in *Instance) EvalString(c *Cursor) (string, error) {
	c.skipSpaces()

	if c.peek() == '"' {
		return parseStringLiteral(c), nil
	}

	if c.peek() >= token.FirstToken {
		op := c.peekOpcode()
		c.next()
		switch op {
		case token.CHR:
			n, err := in.evalParenInt(c)
			if err != nil {
				return "", err
			}
			return fnChr(n)
		case token.STR:
			x, err := in.evalParenNum(c)
			if err != nil {
				return "", err
			}
			return fnStr(x), nil
		case token.LEFT:
			s, n, err := in.evalStrIntArgs(c)
			if err != nil {
				return "", err
			}
			return fnLeft(s, n), nil
		case token.RIGHT:
			s, n, err := in.evalStrIntArgs(c)
			if err != nil {
				return "", err
			}
			return fnRight(s, n), nil
		case token.MID:
			return in.evalMid(c)
		default:
			// Not a string function: this opcode wasn't ours to consume.
			c.unget()
		}
	}

	if isAlpha(c.peek()) {
		key, _, err := in.parseVarName(c)
		if err != nil {
			return "", err
		}
		if !key.Str {
			return "", Err(TypeMismatch)
		}

		c.skipSpaces()
		if c.peek() == '(' {
			indices, err := in.parseIndices(c)
			if err != nil {
				return "", err
			}
			s, err := in.Arrays.GetStr(key, indices)
			if err != nil {
				return "", subscriptErr(err)
			}
			return s, nil
		}
		return in.Vars.Get(key).Str, nil
	}

	// A number, sign, parenthesis or non-string function starts a
	// numeric operand.
	if b := c.peek(); isDigit(b) || b == '.' || b == '-' || b == '+' || b == '(' || b >= token.FirstToken {
		return "", Err(TypeMismatch)
	}
	return "", nil
}

// parseStringLiteral reads a double-quoted run, stopping at the closing
// quote or end of line. It does not itself enforce MaxStringLen: an
// over-length literal reaches the caller whole, so an assignment target
// (doLet) can raise ST rather than have the length silently disappear
// here where no error could be reported.
func parseStringLiteral(c *Cursor) string {
	c.next() // opening quote
	buf := make([]byte, 0, value.MaxStringLen)
	for c.peek() != '"' && !c.atEnd() {
		buf = append(buf, c.next())
	}
	if c.peek() == '"' {
		c.next()
	}
	return string(buf)
}

// evalParenInt reads an optional "(" expr ")" and returns it as an int,
// used by CHR$.
func (in *Instance) evalParenInt(c *Cursor) (int, error) {
	c.skipSpaces()
	if c.peek() == '(' {
		c.next()
	}
	n, err := in.EvalInteger(c)
	if err != nil {
		return 0, err
	}
	c.skipSpaces()
	if c.peek() == ')' {
		c.next()
	}
	return n, nil
}

// evalParenNum is evalParenInt's float counterpart, used by STR$.
func (in *Instance) evalParenNum(c *Cursor) (float64, error) {
	c.skipSpaces()
	if c.peek() == '(' {
		c.next()
	}
	x, err := in.EvalNumeric(c)
	if err != nil {
		return 0, err
	}
	c.skipSpaces()
	if c.peek() == ')' {
		c.next()
	}
	return x, nil
}

// evalStrIntArgs reads "(" str-expr "," int-expr ")", the shared shape
// of LEFT$ and RIGHT$.
func (in *Instance) evalStrIntArgs(c *Cursor) (string, int, error) {
	c.skipSpaces()
	if c.peek() == '(' {
		c.next()
	}
	s, err := in.EvalString(c)
	if err != nil {
		return "", 0, err
	}
	c.skipSpaces()
	if c.peek() == ',' {
		c.next()
	}
	n, err := in.EvalInteger(c)
	if err != nil {
		return "", 0, err
	}
	c.skipSpaces()
	if c.peek() == ')' {
		c.next()
	}
	return s, n, nil
}

// evalMid reads "(" str-expr "," int-expr ["," int-expr] ")" for MID$,
// whose length argument is optional (defaults to "rest of string").
func (in *Instance) evalMid(c *Cursor) (string, error) {
	c.skipSpaces()
	if c.peek() == '(' {
		c.next()
	}
	s, err := in.EvalString(c)
	if err != nil {
		return "", err
	}
	c.skipSpaces()
	if c.peek() == ',' {
		c.next()
	}
	start, err := in.EvalInteger(c)
	if err != nil {
		return "", err
	}
	length := len(s)
	c.skipSpaces()
	if c.peek() == ',' {
		c.next()
		length, err = in.EvalInteger(c)
		if err != nil {
			return "", err
		}
	}
	c.skipSpaces()
	if c.peek() == ')' {
		c.next()
	}
	return fnMid(s, start, length)
}
