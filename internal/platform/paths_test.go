package platform

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDisplayName(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix path layout")
	}

	tests := []struct {
		path string
		want string
	}{
		{"/home/user/photos", "photos"},
		{"/home/user/photos/", "photos"},
		{"relative/dir", "dir"},
		{"/", "/"},
		{".", "."},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DisplayName(tt.path); got != tt.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestSamePath(t *testing.T) {
	dir := t.TempDir()

	if !SamePath(dir, filepath.Join(dir, "sub", "..")) {
		t.Error("SamePath() should treat cleaned paths as equal")
	}
	if SamePath(dir, filepath.Join(dir, "other")) {
		t.Error("SamePath() should differ for different directories")
	}
}

func TestValidatePath(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		err := ValidatePath("  ")
		var pe *PathError
		if !errors.As(err, &pe) {
			t.Fatalf("ValidatePath() error = %v, want *PathError", err)
		}
		if pe.Message != "path is empty" {
			t.Errorf("Message = %q", pe.Message)
		}
	})

	t.Run("NulByte", func(t *testing.T) {
		if err := ValidatePath("a\x00b"); err == nil {
			t.Error("ValidatePath() should reject NUL bytes")
		}
	})

	t.Run("Valid", func(t *testing.T) {
		if err := ValidatePath(t.TempDir()); err != nil {
			t.Errorf("ValidatePath() error = %v", err)
		}
	})
}

func TestPathErrorMessage(t *testing.T) {
	err := &PathError{Path: "x", Message: "bad"}
	if err.Error() != "invalid path 'x': bad" {
		t.Errorf("Error() = %s", err.Error())
	}
}
