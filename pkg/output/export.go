package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sdejongh/dirdiff/pkg/models"
)

// ExportFormats lists the supported export formats
var ExportFormats = []string{"csv", "json", "human"}

// WriteExport writes the differences of a report to a file.
// Format can be "csv" (default), "json" or "human". The file is written
// to a temporary name and renamed into place, so a failed export never
// leaves a truncated file behind.
func WriteExport(report *models.Report, path string, format string) error {
	write, err := exportWriter(format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create export file %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	bw := bufio.NewWriter(tmp)
	if err := write(report, bw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set export file permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move export file into place: %w", err)
	}

	return nil
}

// WriteExportTo writes the differences of a report to w in the given format
func WriteExportTo(report *models.Report, w io.Writer, format string) error {
	write, err := exportWriter(format)
	if err != nil {
		return err
	}
	return write(report, w)
}

func exportWriter(format string) (func(*models.Report, io.Writer) error, error) {
	switch format {
	case "csv", "":
		return writeDifferencesCSV, nil
	case "json":
		return writeDifferencesJSON, nil
	case "human":
		return writeDifferencesHuman, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s (use: %s)", format, strings.Join(ExportFormats, ", "))
	}
}

// writeDifferencesCSV writes the header "Value,Location" and one
// fully quoted "<key>","<label>" line per difference
func writeDifferencesCSV(report *models.Report, w io.Writer) error {
	if _, err := io.WriteString(w, "Value,Location\n"); err != nil {
		return err
	}
	for _, diff := range report.Differences() {
		if _, err := io.WriteString(w, quoteField(diff.Key)+","+quoteField(diff.Label)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// writeDifferencesHuman writes differences in human-readable format
func writeDifferencesHuman(report *models.Report, w io.Writer) error {
	fmt.Fprintf(w, "Differences Report\n")
	fmt.Fprintf(w, "==================\n\n")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "First: %s\n", report.FirstPath)
	fmt.Fprintf(w, "Second: %s\n", report.SecondPath)
	fmt.Fprintf(w, "Mode: %s\n\n", report.Mode)

	fmt.Fprintf(w, "Total Differences: %d\n\n", report.TotalDifferences())

	sections := []struct {
		label string
		keys  []string
	}{
		{report.FirstLabel, report.Result.OnlyInFirst},
		{report.SecondLabel, report.Result.OnlyInSecond},
	}

	for _, section := range sections {
		if len(section.keys) == 0 {
			continue
		}

		title := fmt.Sprintf("%s (%d)", section.label, len(section.keys))
		fmt.Fprintf(w, "%s\n", title)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(title)))
		for _, key := range section.keys {
			fmt.Fprintf(w, "  %s\n", key)
		}
		fmt.Fprintf(w, "\n")
	}

	return nil
}

// writeDifferencesJSON writes differences in JSON format
func writeDifferencesJSON(report *models.Report, w io.Writer) error {
	output := struct {
		Generated   string              `json:"generated"`
		FirstPath   string              `json:"first_path"`
		SecondPath  string              `json:"second_path"`
		Mode        string              `json:"mode"`
		TotalCount  int                 `json:"total_count"`
		Differences []models.Difference `json:"differences"`
	}{
		Generated:   time.Now().Format(time.RFC3339),
		FirstPath:   report.FirstPath,
		SecondPath:  report.SecondPath,
		Mode:        string(report.Mode),
		TotalCount:  report.TotalDifferences(),
		Differences: report.Differences(),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
