package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Local lists a directory through a go-billy filesystem
type Local struct {
	rootPath string
	fs       billy.Filesystem
	dir      string
}

// NewLocal creates a backend for a directory on the local filesystem
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, newEnumerationError("access", absPath, err)
	}

	if !info.IsDir() {
		return nil, newEnumerationError("access", absPath, ErrNotDirectory)
	}

	return &Local{
		rootPath: absPath,
		fs:       osfs.New(absPath),
		dir:      ".",
	}, nil
}

// NewFilesystem creates a backend for dir inside an arbitrary billy filesystem
func NewFilesystem(fsys billy.Filesystem, dir string) (*Local, error) {
	info, err := fsys.Stat(dir)
	if err != nil {
		return nil, newEnumerationError("access", dir, err)
	}

	if !info.IsDir() {
		return nil, newEnumerationError("access", dir, ErrNotDirectory)
	}

	return &Local{
		rootPath: dir,
		fs:       fsys,
		dir:      dir,
	}, nil
}

// List returns the immediate children of the directory.
// Symbolic links report the kind of their target; a dangling link is
// listed as a file.
func (l *Local) List(ctx context.Context) ([]Entry, error) {
	infos, err := l.readDir()
	if err != nil {
		return nil, newEnumerationError("list", l.rootPath, err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if info.Mode()&os.ModeSymlink != 0 {
			if target, err := l.fs.Stat(l.fs.Join(l.dir, info.Name())); err == nil {
				info = renamedInfo{FileInfo: target, name: info.Name()}
			}
		}

		entries = append(entries, Entry{
			Name:    info.Name(),
			IsDir:   info.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return entries, nil
}

// readDir reads the directory, retrying when a child disappears while
// its metadata is being read. The directory itself must still exist.
func (l *Local) readDir() ([]os.FileInfo, error) {
	var lastErr error
	for attempt := 0; attempt < readDirAttempts; attempt++ {
		infos, err := l.fs.ReadDir(l.dir)
		if err == nil {
			return infos, nil
		}
		lastErr = err
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		if _, statErr := l.fs.Stat(l.dir); statErr != nil {
			return nil, statErr
		}
	}
	return nil, lastErr
}

const readDirAttempts = 3

// renamedInfo keeps the link's own name on its target's metadata
type renamedInfo struct {
	os.FileInfo
	name string
}

func (i renamedInfo) Name() string { return i.name }

// Root returns the directory path
func (l *Local) Root() string {
	return l.rootPath
}

// Close releases resources (no-op for billy filesystems)
func (l *Local) Close() error {
	return nil
}
