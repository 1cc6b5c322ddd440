package interp

import (
	"math"
	"strconv"
	"strings"

	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/value"
)

// This file is the Go counterpart of functions.c: every BASIC built-in,
// ported one for one. Numeric domain errors (SQR of a negative, LOG of a
// non-positive, EXP overflow) return *Error instead of the original's
// longjmp out of the function.

func fnSgn(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// fnInt truncates toward negative infinity, matching BASIC's INT (not
// Go's int() truncation toward zero).
func fnInt(x float64) float64 {
	return math.Floor(x)
}

func fnAbs(x float64) float64 {
	return math.Abs(x)
}

func fnSqr(x float64) (float64, error) {
	if x < 0 {
		return 0, Err(IllegalFunctionCall)
	}
	return math.Sqrt(x), nil
}

func fnSin(x float64) float64 { return math.Sin(x) }
func fnCos(x float64) float64 { return math.Cos(x) }
func fnTan(x float64) float64 { return math.Tan(x) }
func fnAtn(x float64) float64 { return math.Atan(x) }

func fnLog(x float64) (float64, error) {
	if x <= 0 {
		return 0, Err(IllegalFunctionCall)
	}
	return math.Log(x), nil
}

func fnExp(x float64) (float64, error) {
	v := math.Exp(x)
	if math.IsInf(v, 1) {
		return 0, Err(Overflow)
	}
	return v, nil
}

// fnPeek has nothing to read in a port with no emulated memory image; it
// always answers 0, keeping the opcode legal for ported programs that
// merely probe it rather than rely on its value.
func fnPeek(addr float64) float64 {
	return 0
}

// fnRnd implements the exact pseudo-random generator: a negative
// argument reseeds, zero returns the current state unchanged, and a
// positive argument advances a linear congruential generator seeded at
// 12345.
func (in *Instance) fnRnd(x float64) float64 {
	switch {
	case x < 0:
		in.rndState = uint32(int64(-x * 65536))
	case x == 0:
		// return current state unchanged
	default:
		in.rndState = in.rndState*1103515245 + 12345
	}
	return float64(in.rndState&0x7fffffff) / 2147483648.0
}

func fnLen(s string) int {
	return len(s)
}

func fnAsc(s string) (float64, error) {
	if len(s) == 0 {
		return 0, Err(IllegalFunctionCall)
	}
	return float64(s[0]), nil
}

func fnChr(n int) (string, error) {
	if n < 0 || n > 255 {
		return "", Err(IllegalFunctionCall)
	}
	return string([]byte{byte(n)}), nil
}

func fnStr(x float64) string {
	return value.FormatStr(x)
}

// fnVal parses the longest numeric prefix of s it can, matching the
// original's permissive "best effort" scan; an unparseable string
// yields 0, not an error.
func fnVal(s string) float64 {
	s = strings.TrimLeft(s, " \t")
	end := 0
	seenDigit := false
	seenDot := false
	seenE := false
	for end < len(s) {
		c := s[end]
		switch {
		case isDigit(c):
			seenDigit = true
		case c == '.' && !seenDot && !seenE:
			seenDot = true
		case (c == '+' || c == '-') && end == 0:
		case (c == 'e' || c == 'E') && seenDigit && !seenE:
			seenE = true
		case (c == '+' || c == '-') && end > 0 && (s[end-1] == 'e' || s[end-1] == 'E'):
		default:
			goto done
		}
		end++
	}
done:
	if !seenDigit {
		return 0
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}

func fnLeft(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if n >= len(s) {
		return s
	}
	return s[:n]
}

func fnRight(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// fnMid implements 1-based MID$(s, start[, length]); start below 1 is a
// function-call error, start past the end of the string yields "".
func fnMid(s string, start, length int) (string, error) {
	if start < 1 {
		return "", Err(IllegalFunctionCall)
	}
	if length < 0 {
		length = 0
	}
	i := start - 1
	if i >= len(s) {
		return "", nil
	}
	end := i + length
	if end > len(s) {
		end = len(s)
	}
	return s[i:end], nil
}

// power implements the ^ operator: a negative base requires an integral
// exponent (otherwise the real result is undefined), and any resulting
// infinity is an overflow.
func power(base, exp float64) (float64, error) {
	if base < 0 && exp != math.Trunc(exp) {
		return 0, Err(IllegalFunctionCall)
	}
	v := math.Pow(base, exp)
	if math.IsInf(v, 0) {
		return 0, Err(Overflow)
	}
	return v, nil
}
