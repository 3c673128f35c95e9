package csv

import (
	"errors"

	"github.com/spf13/afero"
)

// ParseFile reads and parses the file at path on fs. A nil dialect is
// chosen from the file extension (see DialectForFilename).
//
// Open and read failures are returned as an *IOError.
func ParseFile(fs afero.Fs, path string, d *Dialect) (*Table, error) {
	return ParseFileWithOptions(fs, path, d, DefaultParseOptions())
}

// ParseFileWithOptions reads and parses the file at path with custom options.
func ParseFileWithOptions(fs afero.Fs, path string, d *Dialect, opts ParseOptions) (*Table, error) {
	if d == nil {
		d = DialectForFilename(path)
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return ParseWithOptions(data, d, opts)
}

// WriteFile serializes t and writes it to path on fs, creating or
// truncating the file.
func WriteFile(fs afero.Fs, path string, t *Table) (err error) {
	f, err := fs.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	if _, err := t.WriteTo(f); err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = path
			return ioErr
		}
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
