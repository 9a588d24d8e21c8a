package main

import (
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"github.com/abiiranathan/go-translate-lint/analyzer/ast"
	"github.com/abiiranathan/go-translate-lint/analyzer/config"
)

type checkOptions struct {
	format     string
	compress   bool
	configFile string
	funcs      []string
	exclude    []string
	strict     bool
	unusedKeys bool
	fail       bool
}

var checkOpts checkOptions

func init() {
	f := checkCmd.Flags()
	f.StringVar(&checkOpts.format, "format", "text", "output format (text|json|table|msgpack)")
	f.BoolVar(&checkOpts.compress, "compress", false, "gzip-compress json output")
	f.StringVar(&checkOpts.configFile, "config", "", "configuration file (default: nearest .transcheck.toml or .transcheck.yaml)")
	f.StringSliceVar(&checkOpts.funcs, "funcs", nil, "translation functions to check")
	f.StringSliceVar(&checkOpts.exclude, "exclude", nil, "package path patterns to skip")
	f.BoolVar(&checkOpts.strict, "strict", false, "report values whose type cannot be proven printable")
	f.BoolVar(&checkOpts.unusedKeys, "unused-keys", false, "report collection keys no placeholder uses")
	f.BoolVar(&checkOpts.fail, "fail", false, "exit with status 1 when issues are found")
}

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Check translation calls in every package under dir",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := clog.FromContext(ctx)

		dir, err := resolveDir(args)
		if err != nil {
			return err
		}

		cfg, err := config.Load(ctx, dir, checkOpts.configFile)
		if err != nil {
			return err
		}
		applyCheckFlags(cmd, &cfg)
		log.Debugf("checking %s for %s", dir, strings.Join(cfg.Functions, ", "))

		format, err := parseFormat(checkOpts.format)
		if err != nil {
			return err
		}
		colorMode, _ := cmd.Flags().GetString("color")

		result := ast.AnalyzeDir(ctx, dir, cfg.AnalysisConfig())
		result.Errors = filterImportErrors(result.Errors)

		out := reportOptions{
			format:   format,
			compress: checkOpts.compress,
			color:    useColor(colorMode, cmd.OutOrStdout()),
		}
		if err := writeReport(cmd.OutOrStdout(), result, out); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}

		if checkOpts.fail && result.IssueCount() > 0 {
			return errIssuesFound
		}
		return nil
	},
}

// applyCheckFlags overrides cfg with the flags given on the command line.
func applyCheckFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("funcs") {
		cfg.Functions = checkOpts.funcs
	}
	if flags.Changed("exclude") {
		cfg.ExcludePackages = checkOpts.exclude
	}
	if flags.Changed("strict") {
		cfg.StrictPrintability = checkOpts.strict
	}
	if flags.Changed("unused-keys") {
		cfg.ReportUnusedKeys = checkOpts.unusedKeys
	}
}
