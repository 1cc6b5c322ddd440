// Package program implements the line store: a single growable byte
// buffer holding every tokenized program line as a packed record, kept
// sorted by line number and terminated by a two-byte sentinel. It is an
// opaque byte slice read and written through small binary-encoding
// helpers, exposed as a typed cursor API rather than a slice of structs
// aliased onto raw memory.
package program

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// headerSize is the per-record overhead: a 4-byte line number and a
// 4-byte total record length (header + tokens + NUL terminator).
const headerSize = 8

// DefaultMaxSize is the buffer ceiling used when New is called without an
// explicit capacity; it stands in for the original's single pre-allocated
// program memory block, scaled up here since a modern host has room to
// spare.
const DefaultMaxSize = 1 << 20

// ErrOutOfMemory is returned by Insert when the new tail would exceed the
// store's maximum size.
var ErrOutOfMemory = errors.New("out of memory")

// Store is the ordered, gap-less sequence of tokenized program lines.
type Store struct {
	buf     []byte
	maxSize int
}

// New returns an empty store with the default maximum size.
func New() *Store {
	return NewSize(DefaultMaxSize)
}

// NewSize returns an empty store bounded to maxSize bytes.
func NewSize(maxSize int) *Store {
	s := &Store{maxSize: maxSize}
	s.Clear()
	return s
}

// Clear rewrites the buffer to just the end-of-program sentinel.
func (s *Store) Clear() {
	s.buf = []byte{0, 0}
}

// Len reports how many bytes the store currently occupies, sentinel
// included.
func (s *Store) Len() int { return len(s.buf) }

func recordLen(buf []byte, pos int) int {
	return int(binary.LittleEndian.Uint32(buf[pos+4 : pos+8]))
}

func recordNum(buf []byte, pos int) int {
	return int(binary.LittleEndian.Uint32(buf[pos : pos+4]))
}

// atSentinel reports whether the two bytes at pos are the end-of-program
// marker.
func atSentinel(buf []byte, pos int) bool {
	return buf[pos] == 0 && buf[pos+1] == 0
}

// Find returns the token bytes stored for line n, and whether it exists.
func (s *Store) Find(n int) ([]byte, bool) {
	pos := 0
	for !atSentinel(s.buf, pos) {
		num := recordNum(s.buf, pos)
		ln := recordLen(s.buf, pos)
		if num == n {
			return s.buf[pos+headerSize : pos+ln-1], true
		}
		if num > n {
			return nil, false
		}
		pos += ln
	}
	return nil, false
}

// Next returns the first stored line with a number strictly greater than
// after (after == 0 returns the very first line), used by the driver to
// advance past the end of the currently executing line.
func (s *Store) Next(after int) (num int, tokens []byte, ok bool) {
	pos := 0
	for !atSentinel(s.buf, pos) {
		n := recordNum(s.buf, pos)
		ln := recordLen(s.buf, pos)
		if n > after {
			return n, s.buf[pos+headerSize : pos+ln-1], true
		}
		pos += ln
	}
	return 0, nil, false
}

// First returns the lowest-numbered stored line, if any.
func (s *Store) First() (num int, tokens []byte, ok bool) {
	return s.Next(0)
}

// Delete removes line n, if present; it is not an error for n to be absent.
func (s *Store) Delete(n int) {
	pos := 0
	for !atSentinel(s.buf, pos) {
		num := recordNum(s.buf, pos)
		ln := recordLen(s.buf, pos)
		if num == n {
			s.buf = append(s.buf[:pos], s.buf[pos+ln:]...)
			return
		}
		if num > n {
			return
		}
		pos += ln
	}
}

// Insert stores tokens (which must already end in a single NUL byte) as
// line n, replacing any existing record for n. Lines stay sorted
// ascending by number; insertion finds the first record with a greater
// number and splices the new record in before it.
func (s *Store) Insert(n int, tokens []byte) error {
	s.Delete(n)

	total := headerSize + len(tokens)
	if len(s.buf)+total > s.maxSize {
		return ErrOutOfMemory
	}

	insertAt := len(s.buf) - 2 // just before the sentinel, by default
	pos := 0
	for !atSentinel(s.buf, pos) {
		if recordNum(s.buf, pos) > n {
			insertAt = pos
			break
		}
		pos += recordLen(s.buf, pos)
	}

	rec := make([]byte, total)
	binary.LittleEndian.PutUint32(rec[0:4], uint32(n))
	binary.LittleEndian.PutUint32(rec[4:8], uint32(total))
	copy(rec[headerSize:], tokens)

	buf := make([]byte, 0, len(s.buf)+total)
	buf = append(buf, s.buf[:insertAt]...)
	buf = append(buf, rec...)
	buf = append(buf, s.buf[insertAt:]...)
	s.buf = buf
	return nil
}

// List calls fn for every stored line in ascending order within
// [lo, hi], inclusive.
func (s *Store) List(lo, hi int, fn func(num int, tokens []byte)) {
	pos := 0
	for !atSentinel(s.buf, pos) {
		num := recordNum(s.buf, pos)
		ln := recordLen(s.buf, pos)
		if num > hi {
			return
		}
		if num >= lo {
			fn(num, s.buf[pos+headerSize:pos+ln-1])
		}
		pos += ln
	}
}
