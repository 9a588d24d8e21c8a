// Command transcheck reports translation calls whose arguments do not match
// the placeholders of their template.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// errIssuesFound signals a --fail exit without printing an error.
var errIssuesFound = errors.New("translation issues found")

var rootCmd = &cobra.Command{
	Use:           "transcheck",
	Short:         "Static checker for translation calls",
	Long:          `transcheck checks that translation calls pass the values their template placeholders need`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		logger, err := newLogger(level)
		if err != nil {
			return err
		}
		cmd.SetContext(clog.WithLogger(cmd.Context(), logger))
		return nil
	},
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(placeholdersCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
}

// main executes the root command. Any error exits with status 1.
func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errIssuesFound) {
			fmt.Fprintln(os.Stderr, "transcheck:", err)
		}
		os.Exit(1)
	}
}

// newLogger builds the stderr logger for the requested level.
func newLogger(level string) (*clog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return clog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// resolveDir returns the absolute directory to analyze.
func resolveDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("could not resolve absolute path for %s: %w", dir, err)
	}
	return abs, nil
}

// filterImportErrors removes known import-related errors
// from the analysis error list.
//
// These errors are typically environmental and not actionable
// for translation checks.
func filterImportErrors(errs []string) []string {
	filtered := make([]string, 0, len(errs))
	for _, e := range errs {
		if !isImportError(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// isImportError determines whether an error message
// corresponds to a dependency/import failure.
func isImportError(e string) bool {
	lower := strings.ToLower(e)

	for _, phrase := range []string{
		"could not import",
		"can't find import",
		"cannot find package",
		"no required module provides",
		"build constraints exclude all go files",
	} {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
