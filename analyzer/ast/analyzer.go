// Package ast finds translation calls in Go source code and checks them
// with the validator package.
//
// It supplies everything the validator treats as the host: package loading,
// call matching by fully-qualified name, conversion of go/ast expressions,
// and a type lookup backed by go/types and a package-wide table of variables
// with statically known literal values.
package ast

import (
	"context"
	"fmt"
	goast "go/ast"
	"go/token"
	"runtime"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"

	"github.com/abiiranathan/go-translate-lint/analyzer/validator"
)

// AnalyzeDir loads every package under dir and checks all translation calls.
//
// The analysis proceeds in phases:
// - Load and type-check packages
// - Drop vendored, generated and excluded packages
// - Check packages concurrently (scopes within a package are also concurrent)
// - Flatten findings into TranslateCall entries relative to dir
//
// Load failures and type errors are reported in AnalysisResult.Errors;
// AnalyzeDir itself never fails.
func AnalyzeDir(ctx context.Context, dir string, config AnalysisConfig) AnalysisResult {
	log := clog.FromContext(ctx)
	result := AnalysisResult{}
	fset := token.NewFileSet()

	cfg := &packages.Config{
		Mode:    loadMode,
		Context: ctx,
		Dir:     dir,
		Fset:    fset,
		Tests:   false,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("load error: %v", err))
		return result
	}

	pkgs = selectPackages(pkgs, config, &result)
	log.Debugf("loaded %d packages from %s", len(pkgs), dir)

	printing := newPrintCache()
	perPkg := make([][]TranslateCall, len(pkgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(runtime.NumCPU(), 1))

	for i, pkg := range pkgs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			findings := checkFiles(fset, pkg.Syntax, pkg.TypesInfo, config, printing)
			calls := make([]TranslateCall, 0, len(findings))
			for _, f := range findings {
				if f.Err != nil {
					log.Warnf("%s: %v", pkg.PkgPath, f.Err)
				}
				calls = append(calls, newTranslateCall(f, fset, dir))
			}

			log.Debugf("%s: %d translation calls", pkg.PkgPath, len(calls))
			perPkg[i] = calls
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("analysis interrupted: %v", err))
	}

	for _, calls := range perPkg {
		result.Calls = append(result.Calls, calls...)
	}
	log.Debugf("checked %d calls, %d issues, %d cached types", len(result.Calls), result.IssueCount(), printing.len())

	return result
}

// newTranslateCall flattens a finding into its report entry.
func newTranslateCall(f Finding, fset *token.FileSet, dir string) TranslateCall {
	res := f.Result
	pos := fset.Position(f.Node.Pos())
	end := fset.Position(f.Node.End())

	tc := TranslateCall{
		File:         resolveRelativePath(pos.Filename, dir),
		Line:         pos.Line,
		Column:       pos.Column,
		EndLine:      end.Line,
		EndColumn:    end.Column,
		Function:     f.Function,
		Template:     res.Template,
		Outcome:      res.Outcome,
		Variant:      res.Variant,
		Placeholders: res.Placeholders,
		UnusedKeys:   res.UnusedKeys,
	}

	if len(f.Node.Args) > 0 {
		arg := f.Node.Args[0]
		tc.TemplateStartCol, tc.TemplateEndCol = getExprColumnRange(fset, arg)

		// Adjust for string literal quotes
		if lit, ok := arg.(*goast.BasicLit); ok && lit.Kind == token.STRING {
			tc.TemplateStartCol++ // Skip opening quote
			tc.TemplateEndCol--   // Skip closing quote
		}
	}

	// Issues carry absolute file names; report them like the call.
	if len(res.Issues) > 0 {
		tc.Issues = make([]validator.Issue, len(res.Issues))
		for i, issue := range res.Issues {
			issue.Location.File = tc.File
			tc.Issues[i] = issue
		}
	}

	return tc
}
