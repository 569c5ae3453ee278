package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/dirdiff/internal/platform"
	"github.com/sdejongh/dirdiff/pkg/compare"
	"github.com/sdejongh/dirdiff/pkg/logging"
	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/storage"
)

// ProgressReporter receives per-entry notifications while listed entries
// are filtered. Start is called once both directories have been listed.
type ProgressReporter interface {
	Start(total int)
	Increment()
	Finish()
}

// Engine lists two directories and compares their entry names
type Engine struct {
	first     storage.Backend
	second    storage.Backend
	logger    logging.Logger
	operation *models.CompareOperation
	progress  ProgressReporter
}

// NewEngine creates a new comparison engine
func NewEngine(
	first, second storage.Backend,
	logger logging.Logger,
	operation *models.CompareOperation,
) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		first:     first,
		second:    second,
		logger:    logger,
		operation: operation,
	}
}

// SetProgress attaches a progress reporter fired once per filtered entry
func (e *Engine) SetProgress(p ProgressReporter) {
	e.progress = p
}

// Run lists both directories, filters their entries and compares the
// resulting names. An enumeration failure on either side aborts the run
// before any comparison takes place.
func (e *Engine) Run(ctx context.Context) (*models.Report, error) {
	if err := e.operation.Validate(); err != nil {
		return nil, err
	}
	if err := ValidatePatterns(e.operation.ExcludePatterns); err != nil {
		return nil, err
	}

	opID := e.operation.ID
	if opID == "" {
		opID = uuid.New().String()
	}
	log := e.logger.WithFields(logging.Fields{"run_id": opID, "mode": string(e.operation.Mode)})

	report := &models.Report{
		OperationID: opID,
		FirstPath:   e.first.Root(),
		SecondPath:  e.second.Root(),
		Mode:        e.operation.Mode,
		StartTime:   time.Now(),
	}
	report.FirstLabel, report.SecondLabel = Labels(report.FirstPath, report.SecondPath)

	startFields := logging.Fields{
		"first":  report.FirstPath,
		"second": report.SecondPath,
	}
	if !e.operation.CreatedAt.IsZero() {
		startFields["created_at"] = e.operation.CreatedAt
	}
	log.Info(ctx, "comparison started", startFields)

	firstEntries, err := e.list(ctx, log, e.first)
	if err != nil {
		return nil, err
	}
	secondEntries, err := e.list(ctx, log, e.second)
	if err != nil {
		return nil, err
	}

	e.startProgress(len(firstEntries) + len(secondEntries))
	firstNames := e.filter(firstEntries, &report.Stats.First)
	secondNames := e.filter(secondEntries, &report.Stats.Second)
	e.finishProgress()

	firstKeys, firstSkipped := compare.Keys(firstNames, e.operation.Mode)
	secondKeys, secondSkipped := compare.Keys(secondNames, e.operation.Mode)
	report.Stats.First.Unmatched = firstSkipped
	report.Stats.Second.Unmatched = secondSkipped
	report.Stats.First.Keys = len(firstKeys)
	report.Stats.Second.Keys = len(secondKeys)

	if firstSkipped+secondSkipped > 0 {
		log.Debug(ctx, "entries without a key were ignored", logging.Fields{
			"first":  firstSkipped,
			"second": secondSkipped,
		})
	}

	report.Result = compare.CompareKeys(firstKeys, secondKeys)
	report.Status = models.StatusFor(report.Result)
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	log.Info(ctx, "comparison completed", logging.Fields{
		"only_in_first":     len(report.Result.OnlyInFirst),
		"only_in_second":    len(report.Result.OnlyInSecond),
		"total_differences": report.TotalDifferences(),
		"status":            string(report.Status),
		"duration_ms":       report.Duration.Milliseconds(),
	})

	return report, nil
}

// list enumerates one side and logs enumeration failures
func (e *Engine) list(ctx context.Context, log logging.Logger, backend storage.Backend) ([]storage.Entry, error) {
	entries, err := backend.List(ctx)
	if err != nil {
		log.Error(ctx, "failed to list directory", err, logging.Fields{"path": backend.Root()})
		return nil, fmt.Errorf("failed to list %s: %w", backend.Root(), err)
	}
	log.Debug(ctx, "directory listed", logging.Fields{"path": backend.Root(), "entries": len(entries)})
	return entries, nil
}

// filter applies the operation's listing filters and returns the kept names
func (e *Engine) filter(entries []storage.Entry, stats *models.SideStats) []string {
	stats.Listed = len(entries)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if e.progress != nil {
			e.progress.Increment()
		}
		if e.excluded(entry) {
			stats.Excluded++
			continue
		}
		names = append(names, entry.Name)
	}
	return names
}

func (e *Engine) excluded(entry storage.Entry) bool {
	if e.operation.FilesOnly && entry.IsDir {
		return true
	}
	if e.operation.IgnoreHidden && strings.HasPrefix(entry.Name, ".") {
		return true
	}
	return shouldExclude(entry, e.operation.ExcludePatterns)
}

func (e *Engine) startProgress(total int) {
	if e.progress != nil {
		e.progress.Start(total)
	}
}

func (e *Engine) finishProgress() {
	if e.progress != nil {
		e.progress.Finish()
	}
}

// Labels returns the location labels for both sides: "Only in <base>".
// Full paths are used when both directories share a base name.
func Labels(firstPath, secondPath string) (string, string) {
	first := platform.DisplayName(firstPath)
	second := platform.DisplayName(secondPath)
	if first == second {
		first = filepath.Clean(firstPath)
		second = filepath.Clean(secondPath)
	}
	return "Only in " + first, "Only in " + second
}
