package ast

import (
	goast "go/ast"
	"go/token"
	"go/types"

	"github.com/abiiranathan/go-translate-lint/analyzer/validator"
)

// checkEnv is the read-only state shared by every scope of one package.
type checkEnv struct {
	info     *types.Info
	fset     *token.FileSet
	facts    *literalFacts
	targets  targetSet
	policy   validator.Policy
	printing *printCache
}

// processFunc finds and analyzes the translation calls within a single
// function or top-level declaration. Nested function literals are separate
// work units and are not entered.
func processFunc(n goast.Node, env *checkEnv) FuncScope {
	var scope FuncScope

	goast.Inspect(n, func(child goast.Node) bool {
		// Stop at nested function literals to maintain scope boundaries
		if child != n {
			if _, isFunc := child.(*goast.FuncLit); isFunc {
				return false
			}
		}

		if call, ok := child.(*goast.CallExpr); ok {
			if name, ok := matchTranslateCall(call, env.info, env.targets); ok {
				scope.Findings = append(scope.Findings, analyzeCall(call, name, env))
			}
		}
		return true
	})

	return scope
}

// analyzeCall converts one call and runs the validator on it.
func analyzeCall(call *goast.CallExpr, name string, env *checkEnv) Finding {
	cv := newConverter(env.info, env.facts, env.printing)

	vcall := validator.Call{
		Function: name,
		Args:     cv.convertArgs(call.Args),
		Spread:   call.Ellipsis.IsValid(),
		Location: callLocation(env.fset, call),
	}

	res, err := validator.Analyze(vcall, cv.lookup, env.policy)
	return Finding{
		Node:     call,
		Function: name,
		Result:   res,
		Err:      err,
	}
}

// callLocation returns the span of a call expression.
func callLocation(fset *token.FileSet, call *goast.CallExpr) validator.Location {
	if fset == nil {
		return validator.Location{}
	}
	start := fset.Position(call.Pos())
	end := fset.Position(call.End())
	return validator.Location{
		File:      start.Filename,
		Line:      start.Line,
		Column:    start.Column,
		EndLine:   end.Line,
		EndColumn: end.Column,
	}
}
