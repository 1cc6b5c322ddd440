// Package repl is the interactive surface around interp.Instance: line
// classification (numbered program lines vs. direct commands), the
// "READY." prompt loop, and LOAD/SAVE's filesystem access.
package repl

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
)

// FileSystem implements interp.FileIO against the local filesystem, the
// concrete counterpart the interpreter core never references directly.
type FileSystem struct{}

// Load reads name and splits it into lines, the shape SAVE wrote it in.
func (FileSystem) Load(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", name)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "load %s", name)
	}
	return lines, nil
}

// Save writes lines to name, one per line, overwriting any existing file.
func (FileSystem) Save(name string, lines []string) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "save %s", name)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return errors.Wrapf(err, "save %s", name)
		}
		if err := w.WriteByte('\n'); err != nil {
			return errors.Wrapf(err, "save %s", name)
		}
	}
	return errors.Wrapf(w.Flush(), "save %s", name)
}

// IsNotExist reports whether err (as returned by Load) is a missing-file
// error, distinguishing "?FILE NOT FOUND" from the more general
// "?FILE ERROR" the REPL prints for anything else.
func IsNotExist(err error) bool {
	return os.IsNotExist(errors.Cause(err))
}
