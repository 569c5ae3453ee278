package storage

import (
	"context"
	"errors"
	"io/fs"
	"time"
)

// Entry represents one child of a listed directory
type Entry struct {
	Name    string // Base name, no path separators
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// Backend defines the directory-listing capability used by the engine
// Implementations include the local filesystem and any go-billy filesystem
type Backend interface {
	// List returns the immediate children of the backend's directory
	List(ctx context.Context) ([]Entry, error)

	// Root returns the directory path as shown to the user
	Root() string

	// Close releases any resources held by the backend
	Close() error
}

var (
	// ErrNotExist is matched by enumeration errors for missing directories
	ErrNotExist = errors.New("directory does not exist")
	// ErrPermission is matched by enumeration errors for unreadable directories
	ErrPermission = errors.New("permission denied")
	// ErrNotDirectory is matched when the path exists but is not a directory
	ErrNotDirectory = errors.New("not a directory")
)

// EnumerationError reports a directory that could not be listed
type EnumerationError struct {
	Op   string
	Path string
	Err  error
}

func (e *EnumerationError) Error() string {
	return "cannot " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap exposes both the classified sentinel and the underlying error
func (e *EnumerationError) Unwrap() []error {
	if kind := classify(e.Err); kind != nil {
		return []error{kind, e.Err}
	}
	return []error{e.Err}
}

func classify(err error) error {
	switch {
	case errors.Is(err, ErrNotDirectory):
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotExist
	case errors.Is(err, fs.ErrPermission):
		return ErrPermission
	}
	return nil
}

func newEnumerationError(op, path string, err error) *EnumerationError {
	return &EnumerationError{Op: op, Path: path, Err: err}
}
