package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/abiiranathan/go-translate-lint/analyzer/ast"
	"github.com/abiiranathan/go-translate-lint/analyzer/validator"
)

type outputFormat string

const (
	formatText    outputFormat = "text"
	formatJSON    outputFormat = "json"
	formatTable   outputFormat = "table"
	formatMsgpack outputFormat = "msgpack"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case formatText, formatJSON, formatTable, formatMsgpack:
		return f, nil
	}
	return "", fmt.Errorf("unknown --format %q (want text, json, table or msgpack)", s)
}

type reportOptions struct {
	format   outputFormat
	compress bool
	color    bool
}

// writeReport renders result to w in the selected format.
func writeReport(w io.Writer, result ast.AnalysisResult, opts reportOptions) error {
	switch opts.format {
	case formatJSON:
		return encodeJSON(w, result, opts.compress)
	case formatMsgpack:
		return encodeMsgpack(w, result)
	case formatTable:
		return writeTable(w, result)
	default:
		return writeText(w, result, newPalette(opts.color))
	}
}

// useColor resolves the --color mode for w.
func useColor(mode string, w io.Writer) bool {
	switch strings.ToLower(mode) {
	case "on", "always", "true":
		return true
	case "off", "never", "false":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// encodeJSON serializes output as JSON and writes it to w.
//
// If compress is true, the output is gzip-compressed.
func encodeJSON(w io.Writer, output any, compress bool) error {
	if compress {
		return writeGzipJSON(w, output)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "") // disable indent (reduces size by > 2x)

	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeGzipJSON writes gzip-compressed JSON to w.
func writeGzipJSON(w io.Writer, output any) error {
	gzWriter := gzip.NewWriter(w)

	enc := json.NewEncoder(gzWriter)
	enc.SetIndent("", "") // disable indent (reduces size by > 2x)

	if err := enc.Encode(output); err != nil {
		gzWriter.Close()
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return nil
}

// encodeMsgpack writes result as MessagePack using the JSON field names.
func encodeMsgpack(w io.Writer, result ast.AnalysisResult) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode msgpack: %w", err)
	}
	return nil
}

// palette holds the colors of the text report.
type palette struct {
	location *color.Color
	kind     *color.Color
	err      *color.Color
	summary  *color.Color
	ok       *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		location: color.New(color.Bold),
		kind:     color.New(color.FgRed, color.Bold),
		err:      color.New(color.FgYellow),
		summary:  color.New(color.FgCyan),
		ok:       color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.location, p.kind, p.err, p.summary, p.ok} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// writeText prints one line per issue followed by a summary.
func writeText(w io.Writer, result ast.AnalysisResult, p palette) error {
	var analyzed, skipped int
	for _, call := range result.Calls {
		switch call.Outcome {
		case validator.OutcomeAnalyzed:
			analyzed++
		case validator.OutcomeSkipped:
			skipped++
		}
		for _, issue := range call.Issues {
			loc := fmt.Sprintf("%s:%d:%d:", call.File, call.Line, call.Column)
			if _, err := fmt.Fprintf(w, "%s %s %s\n", p.location.Sprint(loc), p.kind.Sprint(issue.Kind), issue.Message); err != nil {
				return err
			}
		}
	}

	for _, e := range result.Errors {
		if _, err := p.err.Fprintf(w, "error: %s\n", e); err != nil {
			return err
		}
	}

	issues := result.IssueCount()
	summary := fmt.Sprintf("%d calls (%d analyzed, %d skipped), %d issues",
		len(result.Calls), analyzed, skipped, issues)
	if issues == 0 {
		_, err := p.ok.Fprintln(w, summary)
		return err
	}
	_, err := p.summary.Fprintln(w, summary)
	return err
}

// writeTable prints the issues as a markdown table.
func writeTable(w io.Writer, result ast.AnalysisResult) error {
	table := newIssueTable([]string{"Location", "Function", "Kind", "Message"}, w)
	for _, call := range result.Calls {
		for _, issue := range call.Issues {
			row := []string{
				call.File + ":" + strconv.Itoa(call.Line) + ":" + strconv.Itoa(call.Column),
				call.Function,
				string(issue.Kind),
				issue.Message,
			}
			if err := table.Append(row); err != nil {
				return err
			}
		}
	}
	return table.Render()
}

// newIssueTable creates a left-aligned markdown table.
func newIssueTable(headers []string, w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}
