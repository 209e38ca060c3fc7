// Package cmd implements the claimaudit CLI: a cobra command tree
// wrapping internal/engine to audit an insurance claim document and
// render the resulting scorecard.
package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/version"
)

var verbose bool

// ExitError carries a specific process exit code through cobra's error
// return path. Execute unwraps it via errors.As so a command can signal
// e.g. "findings above threshold" (exit 2) distinctly from a plain
// failure (exit 1).
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	if e.Message == "" {
		return "exit error"
	}
	return e.Message
}

var rootCmd = &cobra.Command{
	Use:     "claimaudit",
	Short:   "Audit insurance claim estimates for financial, leakage, and supplement-risk findings",
	Long:    "claimaudit runs a rule-based integrity audit over a property claim estimate,\nflagging deductible/coverage mismatches, Xactimate line-item leakage patterns,\nand supplement-risk indicators, then renders a scorecard as text, JSON, or HTML.",
	Version: version.Version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.SilenceErrors = true
}

// Execute runs the root command and exits with code 1 on error.
// ExitError is handled specially: its Code is used as the exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
