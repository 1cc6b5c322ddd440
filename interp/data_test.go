package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/tokenizer"
)

func newTestInstance(t *testing.T) *Instance {
	t.Helper()
	in, err := New(
		WithOutput(&bytes.Buffer{}),
		WithInput(strings.NewReader("")),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return in
}

func insertLine(t *testing.T, in *Instance, num int, src string) {
	t.Helper()
	if err := in.Program.Insert(num, tokenizer.Tokenize(src)); err != nil {
		t.Fatalf("Insert %d: %v", num, err)
	}
}

func TestNextDatumAcrossLines(t *testing.T) {
	in := newTestInstance(t)
	insertLine(t, in, 10, `DATA 1,2,"THREE"`)
	insertLine(t, in, 20, `DATA 4`)

	wantNum := []float64{1, 2, 0, 4}
	for i, w := range wantNum {
		if i == 2 {
			s, err := in.NextDatum(true)
			if err != nil || s.Str != "THREE" {
				t.Fatalf("NextDatum #%d = (%v, %v), want (THREE, nil)", i, s, err)
			}
			continue
		}
		v, err := in.NextDatum(false)
		if err != nil || v.Num != w {
			t.Fatalf("NextDatum #%d = (%v, %v), want (%v, nil)", i, v, err, w)
		}
	}

	in.RestoreData()
	v, err := in.NextDatum(false)
	if err != nil || v.Num != 1 {
		t.Fatalf("after RestoreData, NextDatum = (%v, %v), want (1, nil)", v, err)
	}
}

func TestNextDatumStringVsNumber(t *testing.T) {
	in := newTestInstance(t)
	insertLine(t, in, 10, `DATA 42,"HELLO"`)

	n, err := in.NextDatum(false)
	if err != nil || n.Num != 42 {
		t.Fatalf("NextDatum(false) = (%v, %v), want (42, nil)", n, err)
	}
	s, err := in.NextDatum(true)
	if err != nil || s.Str != "HELLO" {
		t.Fatalf("NextDatum(true) = (%v, %v), want (HELLO, nil)", s, err)
	}
}

func TestNextDatumSkipsLinesWithoutData(t *testing.T) {
	in := newTestInstance(t)
	insertLine(t, in, 10, `PRINT "NO DATA HERE"`)
	insertLine(t, in, 20, `DATA 99`)

	v, err := in.NextDatum(false)
	if err != nil || v.Num != 99 {
		t.Fatalf("NextDatum = (%v, %v), want (99, nil)", v, err)
	}
}

func TestNextDatumExhaustedReturnsOutOfData(t *testing.T) {
	in := newTestInstance(t)
	insertLine(t, in, 10, `DATA 1`)

	if _, err := in.NextDatum(false); err != nil {
		t.Fatalf("first NextDatum: %v", err)
	}
	_, err := in.NextDatum(false)
	assertKind(t, err, OutOfData)
}

func TestRestoreDataAtResumesFromLine(t *testing.T) {
	in := newTestInstance(t)
	insertLine(t, in, 10, `DATA 1`)
	insertLine(t, in, 20, `DATA 2`)
	insertLine(t, in, 30, `DATA 3`)

	in.RestoreDataAt(20)
	v, err := in.NextDatum(false)
	if err != nil || v.Num != 2 {
		t.Fatalf("NextDatum after RestoreDataAt(20) = (%v, %v), want (2, nil)", v, err)
	}
	v, err = in.NextDatum(false)
	if err != nil || v.Num != 3 {
		t.Fatalf("NextDatum = (%v, %v), want (3, nil)", v, err)
	}
}

func TestNextDatumEmptyProgramIsOutOfData(t *testing.T) {
	in := newTestInstance(t)
	_, err := in.NextDatum(false)
	assertKind(t, err, OutOfData)
}
