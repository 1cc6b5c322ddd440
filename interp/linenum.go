package interp

import "strings"

// MaxLineNumber is the highest line number ParseLineNumber accepts,
// matching the original interpreter's fixed line-number ceiling.
const MaxLineNumber = 63999

// ParseLineNumber reads the leading decimal line number from a raw
// source line, if any, returning the number, the remaining text with
// leading space trimmed, and whether a number was found. A line
// with no leading digit, or whose number is outside 1..MaxLineNumber, is
// not a program line and comes back with ok == false.
func ParseLineNumber(s string) (num int, rest string, ok bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, false
	}
	n := 0
	for _, ch := range s[:i] {
		n = n*10 + int(ch-'0')
		if n > MaxLineNumber {
			return 0, s, false
		}
	}
	if n < 1 {
		return 0, s, false
	}
	return n, strings.TrimLeft(s[i:], " \t"), true
}
