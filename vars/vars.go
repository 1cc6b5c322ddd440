// Package vars implements the interpreter's two symbol tables: simple
// scalar variables and dimensioned arrays, keyed by normalized name plus
// type. Both tables auto-create on first reference, and both are reset
// wholesale by NEW, RUN, and CLEAR.
package vars

import (
	"github.com/pkg/errors"

	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/value"
)

// Key identifies a variable or array: its 1-2 character uppercased base
// name plus whether it is the string-typed sibling of that name. `A` and
// `A$` are distinct keys that coexist; the `%` integer sigil folds into
// the numeric (Str == false) bucket.
type Key struct {
	Base string
	Str  bool
}

// Simple is the flat table of scalar variables.
type Simple struct {
	m map[Key]value.Value
}

// NewSimple returns an empty scalar variable table.
func NewSimple() *Simple {
	return &Simple{m: make(map[Key]value.Value)}
}

// Get returns the current value of k, or the type's zero value (0 or "")
// if k has never been written. A read never creates an entry.
func (s *Simple) Get(k Key) value.Value {
	if v, ok := s.m[k]; ok {
		return v
	}
	if k.Str {
		return value.Str("")
	}
	return value.Num(0)
}

// Set assigns v to k, creating the entry if it does not already exist.
func (s *Simple) Set(k Key, v value.Value) {
	s.m[k] = v
}

// Reset clears every variable, as NEW/RUN/CLEAR require.
func (s *Simple) Reset() {
	s.m = make(map[Key]value.Value)
}

// Array is a dimensioned, flat-stored array of one element type.
type Array struct {
	Str  bool
	Dims []int // element counts per dimension, outermost first
	nums []float64
	strs []string
}

func newArray(str bool, dims []int) *Array {
	size := 1
	for _, d := range dims {
		size *= d
	}
	a := &Array{Str: str, Dims: append([]int(nil), dims...)}
	if str {
		a.strs = make([]string, size)
	} else {
		a.nums = make([]float64, size)
	}
	return a
}

// offset computes the row-major flat index for indices, validating both
// the dimension count and each index's range.
func (a *Array) offset(indices []int) (int, error) {
	if len(indices) != len(a.Dims) {
		return 0, errSubscript
	}
	offset := 0
	mult := 1
	for i := len(a.Dims) - 1; i >= 0; i-- {
		idx := indices[i]
		if idx < 0 || idx >= a.Dims[i] {
			return 0, errSubscript
		}
		offset += idx * mult
		mult *= a.Dims[i]
	}
	return offset, nil
}

// errSubscript is a sentinel the Arrays table returns for out-of-range or
// dimension-count-mismatched indices; callers translate it to the BS
// error kind (kept local to avoid a dependency on the interpreter's
// error-kind package from this table).
var errSubscript = errors.New("subscript out of range")

// IsSubscriptError reports whether err is the out-of-range/arity sentinel
// returned by GetNum, SetNum, GetStr, and SetStr.
func IsSubscriptError(err error) bool {
	return errors.Cause(err) == errSubscript
}

// Arrays is the table of dimensioned arrays.
type Arrays struct {
	m map[Key]*Array
}

// NewArrays returns an empty array table.
func NewArrays() *Arrays {
	return &Arrays{m: make(map[Key]*Array)}
}

// autoDims is the shape given to an array that is referenced before any
// DIM: one dimension, 11 cells (indices 0..10).
var autoDims = []int{11}

// lookup returns the array for k, auto-creating it with autoDims if it
// does not exist yet.
func (a *Arrays) lookup(k Key) *Array {
	if arr, ok := a.m[k]; ok {
		return arr
	}
	arr := newArray(k.Str, autoDims)
	a.m[k] = arr
	return arr
}

// Dim declares k with the given dimension sizes (element counts, not max
// index). Re-dimensioning an array that already exists is an error.
func (a *Arrays) Dim(k Key, dims []int) error {
	if _, ok := a.m[k]; ok {
		return errRedim
	}
	a.m[k] = newArray(k.Str, dims)
	return nil
}

// errRedim is the sentinel for DIMming an already-dimensioned array.
var errRedim = errors.New("array already dimensioned")

// IsRedimError reports whether err is the already-dimensioned sentinel
// returned by Dim.
func IsRedimError(err error) bool {
	return errors.Cause(err) == errRedim
}

// GetNum reads a numeric array element, auto-creating the array if absent.
func (a *Arrays) GetNum(k Key, indices []int) (float64, error) {
	arr := a.lookup(k)
	off, err := arr.offset(indices)
	if err != nil {
		return 0, err
	}
	return arr.nums[off], nil
}

// SetNum writes a numeric array element, auto-creating the array if absent.
func (a *Arrays) SetNum(k Key, indices []int, v float64) error {
	arr := a.lookup(k)
	off, err := arr.offset(indices)
	if err != nil {
		return err
	}
	arr.nums[off] = v
	return nil
}

// GetStr reads a string array element, auto-creating the array if absent.
func (a *Arrays) GetStr(k Key, indices []int) (string, error) {
	arr := a.lookup(k)
	off, err := arr.offset(indices)
	if err != nil {
		return "", err
	}
	return arr.strs[off], nil
}

// SetStr writes a string array element, auto-creating the array if absent.
func (a *Arrays) SetStr(k Key, indices []int, v string) error {
	arr := a.lookup(k)
	off, err := arr.offset(indices)
	if err != nil {
		return err
	}
	arr.strs[off] = v
	return nil
}

// Reset clears every array, as NEW/RUN/CLEAR require.
func (a *Arrays) Reset() {
	a.m = make(map[Key]*Array)
}
