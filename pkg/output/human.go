package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/sdejongh/dirdiff/pkg/models"
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	color bool
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter(useColor bool) *HumanFormatter {
	return &HumanFormatter{color: useColor}
}

// Render writes a two-column table of differences followed by a summary
func (f *HumanFormatter) Render(w io.Writer, report *models.Report) error {
	fmt.Fprintf(w, "Comparing:\n")
	fmt.Fprintf(w, "  First:   %s\n", report.FirstPath)
	fmt.Fprintf(w, "  Second:  %s\n", report.SecondPath)
	fmt.Fprintf(w, "  Mode:    %s (%s)\n", report.Mode, report.Mode.Description())
	fmt.Fprintf(w, "\n")

	diffs := report.Differences()
	if len(diffs) > 0 {
		first := f.paint(color.FgCyan)
		second := f.paint(color.FgMagenta)

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "Value\tLocation\n")
		fmt.Fprintf(tw, "-----\t--------\n")
		for _, d := range diffs {
			label := d.Label
			if d.Location == models.LocationFirst {
				label = first.Sprint(label)
			} else {
				label = second.Sprint(label)
			}
			fmt.Fprintf(tw, "%s\t%s\n", d.Key, label)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprintf(w, "Summary:\n")
	writeSideStats(w, "First", report.Stats.First)
	writeSideStats(w, "Second", report.Stats.Second)
	fmt.Fprintf(w, "  Completed in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "\n")

	_, err := fmt.Fprintln(w, f.StatusLine(report))
	return err
}

// StatusLine returns the one-line verdict for the report
func (f *HumanFormatter) StatusLine(report *models.Report) string {
	if report.Status == models.StatusIdentical {
		return f.paint(color.FgGreen).Sprint("✓ No differences, directories match")
	}
	return f.paint(color.FgYellow).Sprintf("⚠ %d differences found", report.TotalDifferences())
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

func (f *HumanFormatter) paint(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if !f.color {
		c.DisableColor()
	}
	return c
}

func writeSideStats(w io.Writer, side string, s models.SideStats) {
	fmt.Fprintf(w, "  %-7s %d entries, %d excluded, %d without key, %d distinct keys\n",
		side+":", s.Listed, s.Excluded, s.Unmatched, s.Keys)
}
