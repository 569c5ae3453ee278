package config

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sdejongh/dirdiff/pkg/compare"
	"github.com/sdejongh/dirdiff/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Compare CompareConfig `yaml:"compare"`
	Output  OutputConfig  `yaml:"output"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
	Exclude []string      `yaml:"exclude"`
}

// CompareConfig holds matching-related settings
type CompareConfig struct {
	Mode         compare.Mode `yaml:"mode" validate:"mode"`
	FilesOnly    bool         `yaml:"files_only"`
	IgnoreHidden bool         `yaml:"ignore_hidden"`
}

// OutputConfig holds console output settings
type OutputConfig struct {
	Format   string `yaml:"format" validate:"oneof=human json"`
	Progress bool   `yaml:"progress"` // Show a listing progress bar
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
	Color    bool   `yaml:"color"`    // Colorize the status line on terminals
}

// ExportConfig holds export file settings
type ExportConfig struct {
	Format string `yaml:"format" validate:"oneof=csv json human"`
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Format     string `yaml:"format" validate:"oneof=json text"`
	Level      string `yaml:"level" validate:"oneof=debug info warn error"`
	File       string `yaml:"file"` // Log file path (empty = stderr)
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"min=1"`
	MaxBackups int    `yaml:"max_backups" validate:"min=0"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Compare: CompareConfig{
			Mode: compare.ModeExact,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: false,
			Quiet:    false,
			Color:    true,
		},
		Export: ExportConfig{
			Format: "csv",
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Format:     "text",
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
		Exclude: []string{},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their YAML names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("mode", func(fl validator.FieldLevel) bool {
		_, err := compare.ParseMode(fl.Field().String())
		return err == nil
	})

	return v
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	return &models.ValidationError{
		Field:   fieldPath(fe.Namespace()),
		Message: fieldMessage(fe),
	}
}

// fieldPath strips the root struct name: "Config.output.format" -> "output.format"
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must be at least " + fe.Param()
	case "mode":
		return "must be one of: exact, number, prefix, full"
	default:
		return "failed '" + fe.Tag() + "' validation"
	}
}

// Normalize resolves mode aliases to their canonical names
func (c *Config) Normalize() {
	if m, err := compare.ParseMode(string(c.Compare.Mode)); err == nil {
		c.Compare.Mode = m
	}
}
