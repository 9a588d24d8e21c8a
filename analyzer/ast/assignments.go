package ast

import (
	goast "go/ast"
	"go/constant"
	"go/token"
	"go/types"
)

// mapEntry is a key/value pair added to a map variable by an index
// assignment such as params["name"] = v.
type mapEntry struct {
	key   goast.Expr
	value goast.Expr
}

// mapFact records the composite literal a map variable was initialized with
// and the literal-key entries assigned to it afterwards.
type mapFact struct {
	lit   *goast.CompositeLit
	extra []mapEntry
}

// literalFacts is the package-wide symbol table of variables whose value is
// statically known. It is built once per package and read-only afterwards.
//
// A string variable is known when every assignment to it stores the same
// constant string. A map variable is known when it is assigned exactly one
// map composite literal, is only ever written through constant-key index
// assignments, and is never passed anywhere except to translation calls.
// Variables that are address-taken, range- or op-assigned, assigned from
// tuples, declared as parameters, or exported at package level are unknown.
type literalFacts struct {
	declared map[*types.Var]bool
	tainted  map[*types.Var]bool
	strings  map[*types.Var]string
	maps     map[*types.Var]*mapFact
	allowed  map[*goast.Ident]bool
}

// collectLiteralFacts walks every file of a package to build its facts.
func collectLiteralFacts(files []*goast.File, info *types.Info, targets targetSet) *literalFacts {
	lf := &literalFacts{
		declared: make(map[*types.Var]bool, 32),
		tainted:  make(map[*types.Var]bool, 32),
		strings:  make(map[*types.Var]string, 16),
		maps:     make(map[*types.Var]*mapFact, 4),
		allowed:  make(map[*goast.Ident]bool, 16),
	}
	if info == nil {
		return lf
	}

	for _, f := range files {
		goast.Inspect(f, func(n goast.Node) bool {
			switch node := n.(type) {
			case *goast.AssignStmt:
				lf.processAssignStmt(node, info)

			case *goast.ValueSpec:
				lf.processValueSpec(node, info)

			case *goast.UnaryExpr:
				if node.Op == token.AND {
					lf.taint(node.X, info)
				}

			case *goast.RangeStmt:
				lf.taint(node.Key, info)
				lf.taint(node.Value, info)

			case *goast.IncDecStmt:
				lf.taint(node.X, info)

			case *goast.IndexExpr:
				// Reading or writing an element does not leak the map.
				if id, ok := unparen(node.X).(*goast.Ident); ok {
					lf.allowed[id] = true
				}

			case *goast.CallExpr:
				if _, ok := matchTranslateCall(node, info, targets); ok {
					for _, arg := range node.Args {
						if id, ok := unparen(arg).(*goast.Ident); ok {
							lf.allowed[id] = true
						}
					}
				}
			}
			return true
		})
	}

	// Any other use of a tracked map may alias or mutate it.
	for id, obj := range info.Uses {
		if v, ok := obj.(*types.Var); ok && lf.maps[v] != nil && !lf.allowed[id] {
			lf.tainted[v] = true
		}
	}

	return lf
}

// processAssignStmt records plain and defining assignments and taints
// everything else.
func (lf *literalFacts) processAssignStmt(assign *goast.AssignStmt, info *types.Info) {
	if assign.Tok != token.ASSIGN && assign.Tok != token.DEFINE {
		for _, lhs := range assign.Lhs {
			lf.taint(lhs, info)
		}
		return
	}

	if len(assign.Lhs) != len(assign.Rhs) {
		for _, lhs := range assign.Lhs {
			lf.taint(lhs, info)
		}
		return
	}

	for i, lhs := range assign.Lhs {
		rhs := assign.Rhs[i]

		switch l := unparen(lhs).(type) {
		case *goast.Ident:
			v := varOf(l, info)
			if v == nil {
				continue
			}
			lf.allowed[l] = true
			if assign.Tok == token.DEFINE && info.Defs[l] != nil {
				lf.declared[v] = true
			}
			lf.bind(v, rhs, info)

		case *goast.IndexExpr:
			id, ok := unparen(l.X).(*goast.Ident)
			if !ok {
				continue
			}
			m := varOf(id, info)
			if m == nil {
				continue
			}
			if _, ok := constString(l.Index, info); !ok {
				lf.tainted[m] = true
				continue
			}
			lf.mapFactFor(m).extra = append(lf.mapFactFor(m).extra, mapEntry{key: l.Index, value: rhs})
		}
	}
}

// processValueSpec records var declarations. Const declarations define no
// variables and are skipped by varOf.
func (lf *literalFacts) processValueSpec(spec *goast.ValueSpec, info *types.Info) {
	for i, name := range spec.Names {
		v := varOf(name, info)
		if v == nil {
			continue
		}
		lf.declared[v] = true

		switch len(spec.Values) {
		case len(spec.Names):
			lf.bind(v, spec.Values[i], info)
		case 0:
			// The zero value of a string is a known literal.
			if isStringType(v.Type()) {
				lf.addString(v, "")
			} else {
				lf.tainted[v] = true
			}
		default:
			lf.tainted[v] = true
		}
	}
}

// bind records that v is assigned rhs.
func (lf *literalFacts) bind(v *types.Var, rhs goast.Expr, info *types.Info) {
	if s, ok := constString(rhs, info); ok {
		lf.addString(v, s)
		return
	}

	if lit, ok := unparen(rhs).(*goast.CompositeLit); ok && isMapType(info.TypeOf(lit)) {
		fact := lf.mapFactFor(v)
		if fact.lit != nil {
			lf.tainted[v] = true
			return
		}
		fact.lit = lit
		return
	}

	lf.tainted[v] = true
}

func (lf *literalFacts) addString(v *types.Var, s string) {
	if prev, ok := lf.strings[v]; ok && prev != s {
		lf.tainted[v] = true
		return
	}
	lf.strings[v] = s
}

func (lf *literalFacts) mapFactFor(v *types.Var) *mapFact {
	fact, ok := lf.maps[v]
	if !ok {
		fact = &mapFact{}
		lf.maps[v] = fact
	}
	return fact
}

// taint marks the variable written by e, if any, as unknown.
func (lf *literalFacts) taint(e goast.Expr, info *types.Info) {
	if e == nil {
		return
	}
	switch x := unparen(e).(type) {
	case *goast.Ident:
		if v := varOf(x, info); v != nil {
			lf.tainted[v] = true
		}
	case *goast.IndexExpr:
		lf.taint(x.X, info)
	}
}

// known reports whether v's facts can be trusted.
func (lf *literalFacts) known(v *types.Var) bool {
	if lf == nil || v == nil || !lf.declared[v] || lf.tainted[v] {
		return false
	}
	// Other packages may assign exported package-level variables.
	if v.Exported() && v.Pkg() != nil && v.Parent() == v.Pkg().Scope() {
		return false
	}
	return true
}

// stringValue returns the single literal value of v.
func (lf *literalFacts) stringValue(v *types.Var) (string, bool) {
	if !lf.known(v) {
		return "", false
	}
	s, ok := lf.strings[v]
	return s, ok
}

// mapValue returns the literal a map variable holds.
func (lf *literalFacts) mapValue(v *types.Var) (*mapFact, bool) {
	if !lf.known(v) {
		return nil, false
	}
	fact, ok := lf.maps[v]
	if !ok || fact.lit == nil {
		return nil, false
	}
	return fact, true
}

// varOf returns the variable an identifier denotes.
func varOf(id *goast.Ident, info *types.Info) *types.Var {
	if info == nil || id == nil || id.Name == "_" {
		return nil
	}
	v, _ := info.ObjectOf(id).(*types.Var)
	return v
}

// constString returns the value of a constant string expression.
func constString(e goast.Expr, info *types.Info) (string, bool) {
	if info != nil {
		if tv, ok := info.Types[e]; ok && tv.Value != nil {
			if tv.Value.Kind() == constant.String {
				return constant.StringVal(tv.Value), true
			}
			return "", false
		}
	}
	return extractStringFast(unparen(e))
}

func isStringType(t types.Type) bool {
	if t == nil {
		return false
	}
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsString != 0
}

func isMapType(t types.Type) bool {
	if t == nil {
		return false
	}
	_, ok := t.Underlying().(*types.Map)
	return ok
}
