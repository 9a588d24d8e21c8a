package ast

import (
	goast "go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/types/typeutil"
)

// targetSet is the parsed form of AnalysisConfig.Functions.
type targetSet struct {
	qualified map[string]bool // "example.com/i18n.T", "(*example.com/i18n.Translator).T"
	bare      map[string]bool // "T"
}

func newTargetSet(functions []string) targetSet {
	ts := targetSet{
		qualified: make(map[string]bool, len(functions)),
		bare:      make(map[string]bool, len(functions)),
	}
	for _, fn := range functions {
		fn = strings.TrimSpace(fn)
		switch {
		case fn == "":
		case strings.Contains(fn, "."):
			ts.qualified[fn] = true
		default:
			ts.bare[fn] = true
		}
	}
	return ts
}

func (ts targetSet) empty() bool {
	return len(ts.qualified) == 0 && len(ts.bare) == 0
}

// match checks fn against the full name, the package-name-qualified name
// ("i18n.T") for package-level functions, and the bare name.
func (ts targetSet) match(fn *types.Func) (string, bool) {
	if name := fn.FullName(); ts.qualified[name] {
		return name, true
	}

	sig, _ := fn.Type().(*types.Signature)
	if fn.Pkg() != nil && sig != nil && sig.Recv() == nil {
		if short := fn.Pkg().Name() + "." + fn.Name(); ts.qualified[short] {
			return short, true
		}
	}

	if ts.bare[fn.Name()] {
		return fn.Name(), true
	}
	return "", false
}

// matchTranslateCall reports whether call invokes a configured translation
// function and returns the matched name.
//
// With type information the static callee is matched by full name, then by
// bare name, and its first parameter must accept a string. Without a static
// callee the syntactic name is matched against bare names only.
func matchTranslateCall(call *goast.CallExpr, info *types.Info, targets targetSet) (string, bool) {
	if info != nil {
		if fn := typeutil.StaticCallee(info, call); fn != nil {
			name, ok := targets.match(fn)
			if !ok || !acceptsTemplate(fn) {
				return "", false
			}
			return name, true
		}
	}

	var name string
	switch fn := unparen(call.Fun).(type) {
	case *goast.SelectorExpr:
		name = fn.Sel.Name
	case *goast.Ident:
		name = fn.Name
	}

	if name != "" && targets.bare[name] {
		return name, true
	}
	return "", false
}

// acceptsTemplate reports whether fn's first parameter can receive a
// template string.
func acceptsTemplate(fn *types.Func) bool {
	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Params().Len() == 0 {
		return false
	}

	first := sig.Params().At(0).Type()
	if sig.Variadic() && sig.Params().Len() == 1 {
		// func(args ...any): the template is the first variadic element.
		if s, ok := first.(*types.Slice); ok {
			first = s.Elem()
		}
	}

	switch u := first.Underlying().(type) {
	case *types.Basic:
		return u.Info()&types.IsString != 0
	case *types.Interface:
		return true
	}
	return false
}
