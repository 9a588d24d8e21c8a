package ast

import (
	goast "go/ast"
	"go/constant"
	"go/token"
	"go/types"

	"github.com/abiiranathan/go-translate-lint/analyzer/validator"
)

// converter maps Go expressions of one call onto the validator's expression
// model and records what it learned about every variable it named.
type converter struct {
	info   *types.Info
	facts  *literalFacts
	lookup *callLookup
}

func newConverter(info *types.Info, facts *literalFacts, printing *printCache) *converter {
	return &converter{
		info:  info,
		facts: facts,
		lookup: &callLookup{
			vars:     make(map[string]*types.Var, 4),
			types:    make(map[string]types.Type, 4),
			facts:    facts,
			printing: printing,
		},
	}
}

// convertArgs converts call arguments. The first argument after the
// template may be a map variable that stands for a known composite literal.
func (cv *converter) convertArgs(args []goast.Expr) []validator.Expr {
	out := make([]validator.Expr, len(args))
	for i, arg := range args {
		if i == 1 {
			if coll, ok := cv.knownMap(arg); ok {
				out[i] = coll
				continue
			}
		}
		out[i] = cv.convert(arg)
	}
	return out
}

// convert maps a single expression.
func (cv *converter) convert(e goast.Expr) validator.Expr {
	e = unparen(e)

	if lit, ok := cv.constant(e); ok {
		return lit
	}

	switch x := e.(type) {
	case *goast.BasicLit:
		return basicLiteral(x)

	case *goast.Ident:
		if x.Name == "nil" && cv.isNil(x) {
			return validator.Other{Desc: "nil"}
		}
		if v := varOf(x, cv.info); v != nil {
			return cv.lookup.add(x.Name, v, v.Type())
		}
		if cv.info == nil {
			return validator.VariableRef{Name: x.Name}
		}
		return validator.Other{Desc: "identifier " + x.Name}

	case *goast.SelectorExpr, *goast.IndexExpr, *goast.StarExpr:
		// Field selections, element reads and dereferences are variables.
		name := types.ExprString(x)
		if sel, ok := x.(*goast.SelectorExpr); ok && cv.info != nil {
			if s, ok := cv.info.Selections[sel]; ok && s.Kind() != types.FieldVal {
				return validator.Other{Desc: "method value " + name}
			}
			if _, ok := cv.info.Uses[sel.Sel].(*types.Func); ok {
				return validator.Other{Desc: "function " + name}
			}
		}
		var v *types.Var
		if sel, ok := x.(*goast.SelectorExpr); ok {
			v = varOf(sel.Sel, cv.info)
		}
		return cv.lookup.add(name, v, cv.typeOf(x))

	case *goast.CompositeLit:
		return cv.compositeLit(x)

	case *goast.CallExpr:
		return validator.Other{Desc: "call to " + types.ExprString(x.Fun)}

	case *goast.FuncLit:
		return validator.Other{Desc: "function literal"}
	}

	return validator.Other{Desc: types.ExprString(e)}
}

// constant folds any constant expression into a literal.
func (cv *converter) constant(e goast.Expr) (validator.Literal, bool) {
	if cv.info == nil {
		return validator.Literal{}, false
	}
	tv, ok := cv.info.Types[e]
	if !ok || tv.Value == nil {
		return validator.Literal{}, false
	}

	val := tv.Value
	switch val.Kind() {
	case constant.String:
		return validator.Literal{Kind: validator.LiteralString, Value: constant.StringVal(val)}, true
	case constant.Bool:
		return validator.Literal{Kind: validator.LiteralBool, Value: val.ExactString()}, true
	case constant.Int:
		if lit, ok := e.(*goast.BasicLit); ok && lit.Kind == token.CHAR {
			return validator.Literal{Kind: validator.LiteralChar, Value: lit.Value}, true
		}
		return validator.Literal{Kind: validator.LiteralInt, Value: val.ExactString()}, true
	case constant.Float:
		return validator.Literal{Kind: validator.LiteralFloat, Value: val.ExactString()}, true
	case constant.Complex:
		return validator.Literal{Kind: validator.LiteralImag, Value: val.ExactString()}, true
	}
	return validator.Literal{}, false
}

// compositeLit converts map, slice and array literals into collections.
// Struct literals are opaque values.
func (cv *converter) compositeLit(lit *goast.CompositeLit) validator.Expr {
	if !cv.isCollection(lit) {
		return validator.Other{Desc: "struct literal"}
	}

	coll := validator.CollectionLiteral{Entries: make([]validator.Entry, 0, len(lit.Elts))}
	for _, elt := range lit.Elts {
		if kv, ok := elt.(*goast.KeyValueExpr); ok {
			coll.Entries = append(coll.Entries, validator.Entry{
				Key:   cv.convert(kv.Key),
				Value: cv.convert(kv.Value),
			})
			continue
		}
		coll.Entries = append(coll.Entries, validator.Entry{Value: cv.convert(elt)})
	}
	return coll
}

func (cv *converter) isCollection(lit *goast.CompositeLit) bool {
	if t := cv.typeOf(lit); t != nil {
		switch t.Underlying().(type) {
		case *types.Map, *types.Slice, *types.Array:
			return true
		}
		return false
	}

	switch lit.Type.(type) {
	case *goast.MapType, *goast.ArrayType:
		return true
	}
	return false
}

// knownMap resolves an identifier to the map literal it provably holds,
// including entries added by constant-key index assignments.
func (cv *converter) knownMap(arg goast.Expr) (validator.CollectionLiteral, bool) {
	id, ok := unparen(arg).(*goast.Ident)
	if !ok {
		return validator.CollectionLiteral{}, false
	}
	fact, ok := cv.facts.mapValue(varOf(id, cv.info))
	if !ok {
		return validator.CollectionLiteral{}, false
	}

	coll, ok := cv.compositeLit(fact.lit).(validator.CollectionLiteral)
	if !ok {
		return validator.CollectionLiteral{}, false
	}
	for _, e := range fact.extra {
		coll.Entries = append(coll.Entries, validator.Entry{
			Key:   cv.convert(e.key),
			Value: cv.convert(e.value),
		})
	}
	return coll, true
}

func (cv *converter) typeOf(e goast.Expr) types.Type {
	if cv.info == nil {
		return nil
	}
	return cv.info.TypeOf(e)
}

func (cv *converter) isNil(id *goast.Ident) bool {
	if cv.info == nil {
		return true
	}
	_, ok := cv.info.ObjectOf(id).(*types.Nil)
	return ok
}

// basicLiteral converts a literal that type information did not cover.
func basicLiteral(lit *goast.BasicLit) validator.Literal {
	switch lit.Kind {
	case token.STRING:
		s, _ := extractStringFast(lit)
		return validator.Literal{Kind: validator.LiteralString, Value: s}
	case token.INT:
		return validator.Literal{Kind: validator.LiteralInt, Value: lit.Value}
	case token.FLOAT:
		return validator.Literal{Kind: validator.LiteralFloat, Value: lit.Value}
	case token.IMAG:
		return validator.Literal{Kind: validator.LiteralImag, Value: lit.Value}
	default:
		return validator.Literal{Kind: validator.LiteralChar, Value: lit.Value}
	}
}
