package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryNames(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// TestNewLocal tests the Local backend constructor
func TestNewLocal(t *testing.T) {
	t.Run("ValidDirectory", func(t *testing.T) {
		tempDir := t.TempDir()

		local, err := NewLocal(tempDir)
		require.NoError(t, err)
		require.NotNil(t, local)
		defer local.Close()

		assert.True(t, filepath.IsAbs(local.Root()))
	})

	t.Run("NonExistentPath", func(t *testing.T) {
		_, err := NewLocal(filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)

		var enumErr *EnumerationError
		require.True(t, errors.As(err, &enumErr))
		assert.True(t, errors.Is(err, ErrNotExist))
		assert.True(t, errors.Is(err, fs.ErrNotExist))
		assert.False(t, errors.Is(err, ErrPermission))
	})

	t.Run("FileNotDirectory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		_, err := NewLocal(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotDirectory))
		assert.False(t, errors.Is(err, ErrNotExist))
	})

	t.Run("RelativePath", func(t *testing.T) {
		tempDir := t.TempDir()
		origWd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(filepath.Dir(tempDir)))
		t.Cleanup(func() { _ = os.Chdir(origWd) })

		local, err := NewLocal(filepath.Base(tempDir))
		require.NoError(t, err)
		assert.Equal(t, filepath.Base(tempDir), filepath.Base(local.Root()))
	})
}

// TestLocalList tests the List method
func TestLocalList(t *testing.T) {
	tempDir := t.TempDir()
	for _, name := range []string{"img1.png", "img2.png", "report.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, name), []byte(name), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "sub", "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "sub", "inner.txt"), nil, 0644))

	local, err := NewLocal(tempDir)
	require.NoError(t, err)

	entries, err := local.List(context.Background())
	require.NoError(t, err)

	// only immediate children, no recursion
	assert.Equal(t, []string{"img1.png", "img2.png", "report.txt", "sub"}, entryNames(entries))

	for _, e := range entries {
		if e.Name == "sub" {
			assert.True(t, e.IsDir)
		} else {
			assert.False(t, e.IsDir)
			assert.Equal(t, int64(len(e.Name)), e.Size)
		}
	}
}

func TestLocalListSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}

	tempDir := t.TempDir()
	target := filepath.Join(t.TempDir(), "album")
	require.NoError(t, os.Mkdir(target, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "a.txt"), []byte("a"), 0644))
	require.NoError(t, os.Symlink(target, filepath.Join(tempDir, "album-link")))
	require.NoError(t, os.Symlink(filepath.Join(tempDir, "a.txt"), filepath.Join(tempDir, "a-link.txt")))
	require.NoError(t, os.Symlink(filepath.Join(tempDir, "missing"), filepath.Join(tempDir, "dangling")))

	local, err := NewLocal(tempDir)
	require.NoError(t, err)

	entries, err := local.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a-link.txt", "a.txt", "album-link", "dangling"}, entryNames(entries))

	kinds := make(map[string]bool)
	for _, e := range entries {
		kinds[e.Name] = e.IsDir
	}
	assert.True(t, kinds["album-link"], "link to a directory counts as a directory")
	assert.False(t, kinds["a-link.txt"])
	assert.False(t, kinds["dangling"])
}

// vanishingFS fails the first ReadDir calls as if a child disappeared mid-listing
type vanishingFS struct {
	billy.Filesystem
	failures int
	calls    int
}

func (f *vanishingFS) ReadDir(path string) ([]os.FileInfo, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, &fs.PathError{Op: "lstat", Path: path + "/tmp123", Err: fs.ErrNotExist}
	}
	return f.Filesystem.ReadDir(path)
}

func TestLocalListEntryVanishes(t *testing.T) {
	base := memfs.New()
	require.NoError(t, util.WriteFile(base, "dir/a.txt", nil, 0644))

	t.Run("Retried", func(t *testing.T) {
		fsys := &vanishingFS{Filesystem: base, failures: 1}
		backend, err := NewFilesystem(fsys, "dir")
		require.NoError(t, err)

		entries, err := backend.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt"}, entryNames(entries))
		assert.Equal(t, 2, fsys.calls)
	})

	t.Run("GivesUp", func(t *testing.T) {
		fsys := &vanishingFS{Filesystem: base, failures: 10}
		backend, err := NewFilesystem(fsys, "dir")
		require.NoError(t, err)

		_, err = backend.List(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotExist))
		assert.Equal(t, readDirAttempts, fsys.calls)
	})
}

func TestLocalListEmpty(t *testing.T) {
	local, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	entries, err := local.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalListRemovedAfterOpen(t *testing.T) {
	tempDir := filepath.Join(t.TempDir(), "gone")
	require.NoError(t, os.Mkdir(tempDir, 0755))

	local, err := NewLocal(tempDir)
	require.NoError(t, err)
	require.NoError(t, os.Remove(tempDir))

	_, err = local.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotExist))
}

func TestLocalListPermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permissions")
	}

	tempDir := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(tempDir, 0755))

	local, err := NewLocal(tempDir)
	require.NoError(t, err)

	require.NoError(t, os.Chmod(tempDir, 0000))
	t.Cleanup(func() { os.Chmod(tempDir, 0755) })

	_, err = local.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPermission))
}

func TestLocalListCancelled(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "a.txt"), nil, 0644))

	local, err := NewLocal(tempDir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = local.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFilesystem(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, fsys.MkdirAll("photos/raw", 0755))
	require.NoError(t, util.WriteFile(fsys, "photos/a1.jpg", []byte("a"), 0644))
	require.NoError(t, util.WriteFile(fsys, "photos/a2.jpg", []byte("bb"), 0644))
	require.NoError(t, util.WriteFile(fsys, "notes.txt", nil, 0644))

	t.Run("ListsChildren", func(t *testing.T) {
		backend, err := NewFilesystem(fsys, "photos")
		require.NoError(t, err)
		assert.Equal(t, "photos", backend.Root())

		entries, err := backend.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"a1.jpg", "a2.jpg", "raw"}, entryNames(entries))
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := NewFilesystem(fsys, "videos")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotExist))
	})

	t.Run("NotDirectory", func(t *testing.T) {
		_, err := NewFilesystem(fsys, "notes.txt")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotDirectory))
	})
}

func TestEnumerationErrorMessage(t *testing.T) {
	err := newEnumerationError("list", "/data", ErrNotDirectory)
	assert.Equal(t, "cannot list /data: not a directory", err.Error())
}
