package ast

import (
	goast "go/ast"
	"go/token"
	"path/filepath"
	"strconv"
)

// extractStringFast extracts the value of a string literal.
// Escapes are decoded; on malformed input the raw text between the quotes
// is returned.
func extractStringFast(expr goast.Expr) (string, bool) {
	lit, ok := expr.(*goast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}

	if s, err := strconv.Unquote(lit.Value); err == nil {
		return s, true
	}

	// Valid string literal must have at least 2 chars (quotes)
	if len(lit.Value) < 2 {
		return "", false
	}
	return lit.Value[1 : len(lit.Value)-1], true
}

// unparen strips any number of enclosing parentheses.
func unparen(e goast.Expr) goast.Expr {
	for {
		p, ok := e.(*goast.ParenExpr)
		if !ok {
			return e
		}
		e = p.X
	}
}

// resolveRelativePath attempts to convert an absolute path to a path
// relative to the specified directory. Falls back to the original path
// if conversion fails.
func resolveRelativePath(absPath, baseDir string) string {
	if baseDir == "" {
		return absPath
	}
	if abs, err := filepath.Abs(absPath); err == nil {
		if rel, err := filepath.Rel(baseDir, abs); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return absPath
}

// getExprColumnRange calculates the column span of an AST expression.
func getExprColumnRange(fset *token.FileSet, expr goast.Expr) (startCol, endCol int) {
	pos := fset.Position(expr.Pos())
	endPos := fset.Position(expr.End())
	return pos.Column, endPos.Column
}
