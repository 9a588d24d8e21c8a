// Package transcheck defines an Analyzer that checks translation calls
// against the placeholders of their template.
//
// # Analyzer transcheck
//
// transcheck: check placeholder arguments of translation calls
//
// A translation call passes a template such as "Hello %1" or "Hello %name"
// followed by the values for its placeholders. The analyzer reports calls
// with too few or too many values, named templates given anything other
// than a collection literal, collections missing a placeholder key, keys
// that are not string literals, and values that cannot be rendered as text.
//
// The checked functions are set with -funcs, a comma-separated list of
// bare names ("T"), package-qualified names ("i18n.T") or full names
// ("(*example.com/i18n.Translator).T").
package transcheck

import (
	"strings"

	"golang.org/x/tools/go/analysis"

	"github.com/abiiranathan/go-translate-lint/analyzer/ast"
	"github.com/abiiranathan/go-translate-lint/analyzer/validator"
)

const Doc = `check placeholder arguments of translation calls

A translation call passes a template such as "Hello %1" or "Hello %name"
followed by the values for its placeholders. Positional templates (%1, %2,
... in order) take plain arguments; all other templates take a single
collection literal keyed by placeholder name.`

// Analyzer checks calls with the default configuration.
var Analyzer = New(ast.DefaultConfig)

// settings holds the flag-controlled configuration of one Analyzer.
type settings struct {
	funcs      string
	strict     bool
	unusedKeys bool
}

// New returns an Analyzer whose flags default to config.
func New(config ast.AnalysisConfig) *analysis.Analyzer {
	s := &settings{
		funcs:      strings.Join(config.Functions, ","),
		strict:     config.Policy.StrictPrintability,
		unusedKeys: config.Policy.ReportUnusedKeys,
	}

	a := &analysis.Analyzer{
		Name: "transcheck",
		Doc:  Doc,
		Run:  s.run,
	}
	a.Flags.StringVar(&s.funcs, "funcs", s.funcs, "comma-separated list of translation functions to check")
	a.Flags.BoolVar(&s.strict, "strict", s.strict, "report values whose type cannot be proven printable")
	a.Flags.BoolVar(&s.unusedKeys, "unused-keys", s.unusedKeys, "report collection keys no placeholder uses")
	return a
}

func (s *settings) config() ast.AnalysisConfig {
	return ast.AnalysisConfig{
		Functions: strings.Split(s.funcs, ","),
		Policy: validator.Policy{
			StrictPrintability: s.strict,
			ReportUnusedKeys:   s.unusedKeys,
		},
	}
}

func (s *settings) run(pass *analysis.Pass) (any, error) {
	for _, f := range ast.CheckFiles(pass.Fset, pass.Files, pass.TypesInfo, s.config()) {
		for _, issue := range f.Result.Issues {
			pass.Report(analysis.Diagnostic{
				Pos:      f.Node.Pos(),
				End:      f.Node.End(),
				Category: string(issue.Kind),
				Message:  issue.Message,
			})
		}
	}
	return nil, nil
}
