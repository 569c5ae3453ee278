package output

import (
	"fmt"
	"io"

	"github.com/sdejongh/dirdiff/pkg/models"
)

// Formatter defines the interface for console output formatting
// Implementations include human-readable and JSON formatters
type Formatter interface {
	// Render writes the comparison report to w
	Render(w io.Writer, report *models.Report) error

	// Name returns the formatter name
	Name() string
}

// NewFormatter returns the formatter registered under name.
// color only affects the human formatter.
func NewFormatter(name string, color bool) (Formatter, error) {
	switch name {
	case "human", "":
		return NewHumanFormatter(color), nil
	case "json":
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use: human, json)", name)
	}
}
