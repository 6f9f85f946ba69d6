// Package delivery hands finished documents to the host's file-save
// capability.
package delivery

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnavailable means the environment has no way to save files.
var ErrUnavailable = errors.New("file delivery unavailable")

// Deliverer saves one document under filename.
type Deliverer interface {
	Deliver(data []byte, contentType, filename string) error
}

// Dir saves documents into a directory, like a browser's download folder.
type Dir struct {
	Path string
}

// NewDir returns a Dir delivering into path.
func NewDir(path string) *Dir {
	return &Dir{Path: path}
}

// Deliver writes data to <Path>/<filename>. The file appears atomically:
// it is written under a temporary name and renamed into place.
func (d *Dir) Deliver(data []byte, contentType, filename string) error {
	if err := checkFilename(filename); err != nil {
		return err
	}
	if d.Path == "" {
		return fmt.Errorf("no download directory: %w", ErrUnavailable)
	}
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return fmt.Errorf("creating download dir: %w", err)
	}

	tmp, err := os.CreateTemp(d.Path, "."+filename+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filename, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", filename, err)
	}
	if err := os.Rename(tmpName, filepath.Join(d.Path, filename)); err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}
	return nil
}

// Writer streams documents to an io.Writer, e.g. stdout.
type Writer struct {
	W io.Writer
}

// Deliver writes data to W. contentType and filename are ignored.
func (w *Writer) Deliver(data []byte, contentType, filename string) error {
	if w.W == nil {
		return ErrUnavailable
	}
	if _, err := w.W.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}

// Unavailable is the Deliverer for environments without file saving.
type Unavailable struct{}

// Deliver always fails with ErrUnavailable.
func (Unavailable) Deliver([]byte, string, string) error {
	return ErrUnavailable
}

func checkFilename(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid filename %q", name)
	}
	return nil
}
