package driver

import (
	"fmt"
	"io"
	"os"

	"openfxc/internal/ir"
	"openfxc/internal/sem"
)

// OpenInput resolves the --input convention: a path opens that file,
// an empty path reads stdin.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}

// ReadSemantic reads a semantic-model document from a file or stdin.
func ReadSemantic(path string) (*sem.Model, error) {
	r, err := OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return sem.Read(r)
}

// ReadModule reads an IR document from a file or stdin.
func ReadModule(path string) (*ir.Module, error) {
	r, err := OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ir.DecodeModule(r)
}

// WriteModule writes an IR document.
func WriteModule(w io.Writer, m *ir.Module) error {
	return ir.EncodeModule(w, m)
}
