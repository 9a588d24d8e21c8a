package ast

import (
	goast "go/ast"

	"github.com/abiiranathan/go-translate-lint/analyzer/validator"
)

// TranslateCall represents an analyzed translation call in Go source code.
type TranslateCall struct {
	// File is the path to the Go file, relative to the analyzed directory.
	File string `json:"file"`
	// Line is the line number where the call starts.
	Line int `json:"line"`
	// Column is the column where the call starts.
	Column int `json:"column"`
	// EndLine is the line number where the call ends.
	EndLine int `json:"endLine,omitempty"`
	// EndColumn is the column where the call ends.
	EndColumn int `json:"endColumn,omitempty"`
	// Function is the configured target name the call matched.
	Function string `json:"function"`
	// Template is the resolved template text, if it could be resolved.
	Template string `json:"template,omitempty"`
	// TemplateStartCol is the starting column of the template argument.
	TemplateStartCol int `json:"templateStartCol,omitempty"`
	// TemplateEndCol is the ending column of the template argument.
	TemplateEndCol int `json:"templateEndCol,omitempty"`
	// Outcome tells whether the call was analyzed, skipped or malformed.
	Outcome validator.Outcome `json:"outcome"`
	// Variant is the placeholder scheme of the template.
	Variant validator.Variant `json:"variant,omitempty"`
	// Placeholders are the placeholder names in template order.
	Placeholders []string `json:"placeholders,omitempty"`
	// Issues are the problems found at this call.
	Issues []validator.Issue `json:"issues,omitempty"`
	// UnusedKeys are collection keys that no placeholder refers to.
	UnusedKeys []string `json:"unusedKeys,omitempty"`
}

// AnalysisResult is the top-level output of AnalyzeDir.
type AnalysisResult struct {
	// Calls lists every translation call found, analyzed or not.
	Calls []TranslateCall `json:"calls"`
	// Errors contains non-fatal errors encountered while loading packages.
	Errors []string `json:"errors"`
}

// IssueCount returns the total number of issues across all calls.
func (r AnalysisResult) IssueCount() int {
	n := 0
	for _, c := range r.Calls {
		n += len(c.Issues)
	}
	return n
}

// AnalysisConfig selects the translation functions to check and how strictly.
type AnalysisConfig struct {
	// Functions are the translation functions to check. An entry containing
	// a dot is a fully-qualified name as reported by types.Func.FullName,
	// e.g. "example.com/i18n.T" or "(*example.com/i18n.Translator).T".
	// Any other entry matches a function or method by name alone.
	Functions []string
	// Policy is passed to the validator unchanged.
	Policy validator.Policy
	// ExcludePackages are path.Match patterns of package paths to skip.
	ExcludePackages []string
}

// DefaultConfig checks functions and methods named T or Translate.
var DefaultConfig = AnalysisConfig{
	Functions: []string{"T", "Translate"},
	Policy:    validator.DefaultPolicy,
}

// Finding is the analysis of one translation call expression.
type Finding struct {
	Node     *goast.CallExpr
	Function string
	Result   validator.Result
	// Err is set when the call violated the validator's input contract.
	Err error
}

// FuncScope holds the translation calls found within a single function or
// top-level declaration.
type FuncScope struct {
	Findings []Finding
}

// funcWorkUnit wraps an AST node for concurrent processing.
type funcWorkUnit struct {
	node goast.Node
}
