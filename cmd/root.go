package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/webrun/webrun/internal/output"
	"github.com/webrun/webrun/internal/script"
	"github.com/webrun/webrun/internal/version"
)

// Sentinel errors mapped to process exit codes in Execute.
var (
	errTestsFailed   = errors.New("one or more tests failed")
	errInvalidScript = errors.New("one or more scripts are invalid")
	errInterrupted   = errors.New("interrupted")
)

var rootCmd = &cobra.Command{
	Use:   "webrun [scripts...]",
	Short: "Run YAML browser test scripts",
	Long: `webrun executes declarative YAML test scripts against a live browser,
reporting pass/fail results with failure screenshots.

Examples:
  # Run a single test in headed mode
  webrun scripts/upload.yaml --headed

  # Run multiple tests with Firefox
  webrun scripts/*.yaml --browser firefox

  # Validate scripts without launching a browser
  webrun --validate scripts/search.yaml`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the CLI and exits with 0 on success, 1 on test or validation
// failure, and 130 on user interrupt.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		switch {
		case errors.Is(err, errInterrupted):
			fmt.Fprintln(os.Stderr, "interrupted by user")
		case errors.Is(err, errTestsFailed), errors.Is(err, errInvalidScript):
		default:
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps a run error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errInterrupted):
		return 130
	default:
		return 1
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.Long += "\n\nSupported actions:\n  " + strings.Join(script.KnownActions(), ", ")

	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.Flags().Bool("headless", true, "Run in headless mode (default)")
	rootCmd.Flags().Bool("headed", false, "Run in headed mode (show browser)")
	rootCmd.Flags().String("browser", "chromium", "Browser to use: chromium, firefox, webkit")
	rootCmd.Flags().Bool("validate", false, "Only validate scripts without running them")
	rootCmd.Flags().String("artifact-dir", ".", "Directory for failure screenshots")
	rootCmd.Flags().Bool("annotate", true, "Stamp a failure banner onto failure screenshots")
	rootCmd.Flags().String("history-db", "", "SQLite file to append run results to (disabled when empty)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		return nil
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	validateOnly, _ := cmd.Flags().GetBool("validate")
	if validateOnly {
		return runValidate(cmd, args)
	}
	return runScripts(cmd, args)
}
