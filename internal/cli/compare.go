package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdejongh/dirdiff/internal/platform"
	"github.com/sdejongh/dirdiff/pkg/engine"
	"github.com/sdejongh/dirdiff/pkg/logging"
	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/output"
)

// CompareFlags holds compare command flags
type CompareFlags struct {
	Mode         string
	Exclude      []string
	FilesOnly    bool
	IgnoreHidden bool
	Output       string
	Export       string
	ExportFormat string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var compareFlags CompareFlags

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare FIRST SECOND",
		Short: "List entry names found in only one of two directories",
		Long: `Compare the entries of two directories and report the keys unique to
each side. The key of an entry depends on the matching mode:

  exact   file name without its extension (default)
  number  first run of digits in the name; names without digits are ignored
  prefix  text before the first run of digits
  full    the whole file name

Exit status is 0 when both sides match, 1 when differences are found,
and 2 on error.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	cmd.Flags().StringVarP(&compareFlags.Mode, "mode", "m", "", "matching mode: exact, number, prefix, full (default from config: exact)")
	cmd.Flags().StringSliceVar(&compareFlags.Exclude, "exclude", []string{}, "glob patterns of entry names to ignore")
	cmd.Flags().BoolVar(&compareFlags.FilesOnly, "files-only", false, "ignore directories")
	cmd.Flags().BoolVar(&compareFlags.IgnoreHidden, "ignore-hidden", false, "ignore entries starting with a dot")
	cmd.Flags().StringVarP(&compareFlags.Output, "output", "o", "", "output format: human, json")
	cmd.Flags().StringVar(&compareFlags.Export, "export", "", "write differences to file")
	cmd.Flags().StringVar(&compareFlags.ExportFormat, "export-format", "", "export format: "+strings.Join(output.ExportFormats, ", ")+" (default csv)")

	// Logging flags
	cmd.Flags().StringVar(&compareFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&compareFlags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&compareFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Directories must be listable before anything else happens
	first, second, err := openDirectories(args[0], args[1])
	if err != nil {
		return &ExitError{Code: models.StatusFailed.ExitCode(), Err: err}
	}
	defer first.Close()
	defer second.Close()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return &ExitError{Code: models.StatusFailed.ExitCode(), Err: fmt.Errorf("failed to load config: %w", err)}
	}

	// Override config with command-line flags
	applyFlagsToConfig(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return &ExitError{Code: models.StatusFailed.ExitCode(), Err: fmt.Errorf("invalid options: %w", err)}
	}
	cfg.Normalize()

	operation, err := createCompareOperation(cfg, args[0], args[1])
	if err != nil {
		return &ExitError{Code: models.StatusFailed.ExitCode(), Err: fmt.Errorf("failed to create comparison: %w", err)}
	}

	// Create output formatter
	formatter, err := output.NewFormatter(cfg.Output.Format, cfg.Output.Color && output.IsTerminal(cmd.OutOrStdout()))
	if err != nil {
		return &ExitError{Code: models.StatusFailed.ExitCode(), Err: err}
	}

	// Create logger
	logger, err := createLogger(cfg, cmd)
	if err != nil {
		return &ExitError{Code: models.StatusFailed.ExitCode(), Err: fmt.Errorf("failed to create logger: %w", err)}
	}
	defer logger.Close()

	if platform.SamePath(args[0], args[1]) {
		logger.Warn(ctx, "both arguments name the same directory", logging.Fields{"path": first.Root()})
		if !cfg.Output.Quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "Note: %s is compared with itself\n", first.Root())
		}
	}

	eng := engine.NewEngine(first, second, logger, operation)
	eng.SetProgress(output.NewProgress(cmd.ErrOrStderr(), cfg.Output.Progress && !cfg.Output.Quiet))

	report, err := eng.Run(ctx)
	if err != nil {
		return &ExitError{Code: models.StatusFailed.ExitCode(), Err: fmt.Errorf("comparison failed: %w", err)}
	}

	if !cfg.Output.Quiet {
		if err := formatter.Render(cmd.OutOrStdout(), report); err != nil {
			return &ExitError{Code: models.StatusFailed.ExitCode(), Err: fmt.Errorf("failed to render report: %w", err)}
		}
	}

	// Write export file if requested
	if compareFlags.Export != "" {
		if err := output.WriteExport(report, compareFlags.Export, cfg.Export.Format); err != nil {
			return &ExitError{Code: models.StatusFailed.ExitCode(), Err: err}
		}
		if !cfg.Output.Quiet && cfg.Output.Format == "human" {
			fmt.Fprintf(cmd.OutOrStdout(), "Differences exported to %s\n", compareFlags.Export)
		}
	}

	if code := report.Status.ExitCode(); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
