package models

import (
	"time"

	"github.com/sdejongh/dirdiff/pkg/compare"
)

// CompareOperation describes a single comparison request
type CompareOperation struct {
	ID              string
	FirstPath       string
	SecondPath      string
	Mode            compare.Mode
	ExcludePatterns []string
	FilesOnly       bool // Ignore directories when listing
	IgnoreHidden    bool // Ignore dot-files when listing
	CreatedAt       time.Time
}

// Validate checks if the operation configuration is valid
func (op *CompareOperation) Validate() error {
	if op.FirstPath == "" {
		return &ValidationError{Field: "FirstPath", Message: "first directory is required"}
	}
	if op.SecondPath == "" {
		return &ValidationError{Field: "SecondPath", Message: "second directory is required"}
	}
	if !op.Mode.Valid() {
		return &ValidationError{Field: "Mode", Message: "unknown matching mode: " + string(op.Mode)}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
