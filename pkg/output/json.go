package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sdejongh/dirdiff/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting
type JSONFormatter struct{}

// JSONReportData represents the rendered report
type JSONReportData struct {
	ID               string              `json:"id"`
	FirstPath        string              `json:"first_path"`
	SecondPath       string              `json:"second_path"`
	Mode             string              `json:"mode"`
	Status           string              `json:"status"`
	StartTime        string              `json:"start_time"`
	Duration         string              `json:"duration"`
	DurationMs       int64               `json:"duration_ms"`
	Stats            models.Statistics   `json:"stats"`
	OnlyInFirst      []string            `json:"only_in_first"`
	OnlyInSecond     []string            `json:"only_in_second"`
	TotalDifferences int                 `json:"total_differences"`
	Differences      []models.Difference `json:"differences"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Render writes the report as an indented JSON document
func (f *JSONFormatter) Render(w io.Writer, report *models.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newJSONReportData(report))
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

func newJSONReportData(report *models.Report) JSONReportData {
	onlyInFirst := report.Result.OnlyInFirst
	if onlyInFirst == nil {
		onlyInFirst = []string{}
	}
	onlyInSecond := report.Result.OnlyInSecond
	if onlyInSecond == nil {
		onlyInSecond = []string{}
	}

	return JSONReportData{
		ID:               report.OperationID,
		FirstPath:        report.FirstPath,
		SecondPath:       report.SecondPath,
		Mode:             string(report.Mode),
		Status:           string(report.Status),
		StartTime:        report.StartTime.Format(time.RFC3339),
		Duration:         report.Duration.Round(time.Millisecond).String(),
		DurationMs:       report.Duration.Milliseconds(),
		Stats:            report.Stats,
		OnlyInFirst:      onlyInFirst,
		OnlyInSecond:     onlyInSecond,
		TotalDifferences: report.TotalDifferences(),
		Differences:      report.Differences(),
	}
}
