package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ExitError carries a process exit code out of a command.
// Err is nil when the code only reports an outcome, such as differences found.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewRootCommand builds the dirdiff command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dirdiff",
		Short: "Report file names present in one directory but not another",
		Long: `dirdiff compares the entries of two directories and lists the names
found on only one side. Names can be matched exactly (without extension), by
their first number, or by the text before their first number.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(NewCompareCommand())
	rootCmd.AddCommand(NewModesCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
