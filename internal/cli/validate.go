package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sdejongh/dirdiff/internal/platform"
	"github.com/sdejongh/dirdiff/pkg/compare"
	"github.com/sdejongh/dirdiff/pkg/config"
	"github.com/sdejongh/dirdiff/pkg/logging"
	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/storage"
)

// openDirectories opens both arguments as storage backends.
// Errors name the side and keep the storage error kind for errors.Is.
func openDirectories(first, second string) (*storage.Local, *storage.Local, error) {
	firstBackend, err := openDirectory("first", first)
	if err != nil {
		return nil, nil, err
	}

	secondBackend, err := openDirectory("second", second)
	if err != nil {
		firstBackend.Close()
		return nil, nil, err
	}

	return firstBackend, secondBackend, nil
}

func openDirectory(side, path string) (*storage.Local, error) {
	if err := platform.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("%s directory: %w", side, err)
	}

	backend, err := storage.NewLocal(path)
	switch {
	case err == nil:
		return backend, nil
	case errors.Is(err, storage.ErrNotExist):
		return nil, fmt.Errorf("%s directory does not exist: %s: %w", side, path, storage.ErrNotExist)
	case errors.Is(err, storage.ErrPermission):
		return nil, fmt.Errorf("%s directory is not accessible: %s: %w", side, path, storage.ErrPermission)
	case errors.Is(err, storage.ErrNotDirectory):
		return nil, fmt.Errorf("%s path exists but is not a directory: %s: %w", side, path, storage.ErrNotDirectory)
	default:
		return nil, fmt.Errorf("failed to access %s directory: %w", side, err)
	}
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	return config.Load(globalFlags.ConfigFile)
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config) {
	// Matching mode
	if compareFlags.Mode != "" {
		cfg.Compare.Mode = compare.Mode(compareFlags.Mode)
	}

	// Listing filters
	if cmd.Flags().Changed("files-only") {
		cfg.Compare.FilesOnly = compareFlags.FilesOnly
	}
	if cmd.Flags().Changed("ignore-hidden") {
		cfg.Compare.IgnoreHidden = compareFlags.IgnoreHidden
	}

	// Exclude patterns are added to the configured ones
	if len(compareFlags.Exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, compareFlags.Exclude...)
	}

	// Output and export formats
	if compareFlags.Output != "" {
		cfg.Output.Format = compareFlags.Output
	}
	if compareFlags.ExportFormat != "" {
		cfg.Export.Format = compareFlags.ExportFormat
	}

	// Logging
	if compareFlags.LogFile != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.File = compareFlags.LogFile
	}
	if compareFlags.LogFormat != "" {
		cfg.Logging.Format = compareFlags.LogFormat
	}
	if compareFlags.LogLevel != "" {
		cfg.Logging.Level = compareFlags.LogLevel
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Enable progress in verbose mode
	if globalFlags.Verbose {
		cfg.Output.Progress = true
	}
}

// createCompareOperation creates a comparison request from configuration
func createCompareOperation(cfg *config.Config, first, second string) (*models.CompareOperation, error) {
	operation := &models.CompareOperation{
		ID:              uuid.New().String(),
		FirstPath:       platform.NormalizePath(first),
		SecondPath:      platform.NormalizePath(second),
		Mode:            cfg.Compare.Mode,
		ExcludePatterns: cfg.Exclude,
		FilesOnly:       cfg.Compare.FilesOnly,
		IgnoreHidden:    cfg.Compare.IgnoreHidden,
		CreatedAt:       time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}

// createLogger creates a logger based on configuration
func createLogger(cfg *config.Config, cmd *cobra.Command) (logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NewNullLogger(), nil
	}

	format := logging.ParseFormat(cfg.Logging.Format)
	level := logging.ParseLevel(cfg.Logging.Level)

	// Without a file, logs go to stderr
	if cfg.Logging.File == "" {
		return logging.NewWriterLogger(cmd.ErrOrStderr(), format, level), nil
	}

	logger, err := logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.Logging.File,
		Format:     format,
		Level:      level,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, err
	}
	return logger, nil
}
