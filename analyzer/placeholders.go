package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abiiranathan/go-translate-lint/analyzer/validator"
)

var placeholdersFormat string

func init() {
	placeholdersCmd.Flags().StringVar(&placeholdersFormat, "format", "text", "output format (text|json)")
}

// placeholderReport describes a template.
type placeholderReport struct {
	Template     string            `json:"template"`
	Placeholders []string          `json:"placeholders"`
	Variant      validator.Variant `json:"variant"`
}

var placeholdersCmd = &cobra.Command{
	Use:   "placeholders <template>",
	Short: "Show the placeholders and variant of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names := validator.ScanPlaceholders(args[0])
		report := placeholderReport{
			Template:     args[0],
			Placeholders: names,
			Variant:      validator.Classify(names),
		}
		if report.Placeholders == nil {
			report.Placeholders = []string{}
		}

		w := cmd.OutOrStdout()
		switch strings.ToLower(placeholdersFormat) {
		case "json":
			return encodeJSON(w, report, false)
		case "text":
			colorMode, _ := cmd.Flags().GetString("color")
			p := newPalette(useColor(colorMode, w))
			if _, err := fmt.Fprintf(w, "variant: %s\n", p.summary.Sprint(report.Variant)); err != nil {
				return err
			}
			for _, name := range report.Placeholders {
				if _, err := fmt.Fprintf(w, "  %%%s\n", name); err != nil {
					return err
				}
			}
			return nil
		}
		return fmt.Errorf("unknown --format %q (want text or json)", placeholdersFormat)
	},
}
