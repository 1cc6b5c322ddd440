package interp

// FileIO abstracts the LOAD/SAVE statements' access to a saved program's
// text, so this package never touches os directly; the REPL supplies the
// real filesystem-backed implementation (see repl.FileSystem), the way
// Instance takes an io.Writer/io.Reader for PRINT/INPUT rather than
// assuming a terminal.
type FileIO interface {
	// Load returns name's contents as source lines (line-number prefix
	// still attached, exactly as SAVE would have written them).
	Load(name string) ([]string, error)
	// Save writes lines (each already formatted as "<num> <text>") to name.
	Save(name string, lines []string) error
}

// WithFileIO wires LOAD/SAVE to a concrete filesystem.
func WithFileIO(f FileIO) Option {
	return func(in *Instance) error {
		in.files = f
		return nil
	}
}
