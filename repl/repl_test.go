package repl_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/interp"
	"github.com/MW0MWZ/Microsoft-6502-Basic-C-Port/repl"
)

func newREPL(t *testing.T, out *bytes.Buffer, in string) *repl.REPL {
	t.Helper()
	inst, err := interp.New(
		interp.WithOutput(out),
		interp.WithInput(strings.NewReader(in)),
	)
	require.NoError(t, err)
	return repl.New(inst, out)
}

func TestRunLoadsStoresAndRunsProgram(t *testing.T) {
	var out bytes.Buffer
	in := "10 PRINT 1+1\nRUN\n"
	r := newREPL(t, &out, in)
	r.Run()

	got := out.String()
	assert.Contains(t, got, " 2 \n", "RUN should execute the stored line and print its result")
	assert.True(t, strings.Count(got, "READY.\n") >= 2, "each prompt cycle reprints READY.")
}

func TestRunReportsTypedError(t *testing.T) {
	var out bytes.Buffer
	r := newREPL(t, &out, "PRINT 1/0\n")
	r.Run()
	assert.Contains(t, out.String(), "?/0 ERROR\n")
}

func TestRunReportsBreak(t *testing.T) {
	var out bytes.Buffer
	in := "10 STOP\nRUN\n"
	r := newREPL(t, &out, in)
	r.Run()
	assert.Contains(t, out.String(), "BREAK IN 10\n")
}

func TestDeletingALineByNumberOnly(t *testing.T) {
	var out bytes.Buffer
	in := "10 PRINT 1\n10\nLIST\n"
	r := newREPL(t, &out, in)
	r.Run()
	// line 10 was deleted before LIST, so its text must not reappear.
	assert.NotContains(t, out.String(), "PRINT")
}

func TestLineInsertInvalidatesCont(t *testing.T) {
	var out bytes.Buffer
	// Line 10 stops, leaving a CONT snapshot; line 30 is then edited in,
	// which must drop that snapshot so the later CONT reports CN rather
	// than silently resuming.
	in := "10 STOP\n20 PRINT 1\nRUN\n30 PRINT 2\nCONT\n"
	r := newREPL(t, &out, in)
	r.Run()
	assert.Contains(t, out.String(), "?CN ERROR\n", "CONT after a line edit must fail")
}

func TestLineDeleteInvalidatesCont(t *testing.T) {
	var out bytes.Buffer
	in := "10 STOP\n20 PRINT 1\nRUN\n20\nCONT\n"
	r := newREPL(t, &out, in)
	r.Run()
	assert.Contains(t, out.String(), "?CN ERROR\n", "CONT after a line delete must fail")
}

func TestFileSystemRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.bas")
	fs := repl.FileSystem{}

	require.NoError(t, fs.Save(path, []string{"10 PRINT 1", "20 END"}))
	lines, err := fs.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"10 PRINT 1", "20 END"}, lines)
}

func TestFileSystemLoadMissingFile(t *testing.T) {
	fs := repl.FileSystem{}
	_, err := fs.Load(filepath.Join(t.TempDir(), "missing.bas"))
	require.Error(t, err)
	assert.True(t, repl.IsNotExist(err))
}

func TestIsNotExistDistinguishesOtherErrors(t *testing.T) {
	// A directory can be opened but not read as a file the way Load expects
	// on most platforms; at minimum, a non-ENOENT error must not be
	// misreported as "not found".
	dir := t.TempDir()
	fs := repl.FileSystem{}
	_, err := fs.Load(dir)
	if err == nil {
		t.Skip("platform allowed opening a directory as a file")
	}
	assert.False(t, repl.IsNotExist(err), "a directory-open error is not a missing-file error")
}
