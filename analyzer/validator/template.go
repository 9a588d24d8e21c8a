package validator

// templateState is the result of template extraction.
type templateState int

const (
	templateUnresolved templateState = iota
	templateResolved
	templateNotString
)

// ExtractTemplate returns the literal text of a template argument. It
// resolves string literals directly and variables through lookup. Any other
// shape is unresolvable.
func ExtractTemplate(arg Expr, lookup TypeLookup) (string, bool) {
	text, state := extractTemplate(arg, lookup)
	return text, state == templateResolved
}

func extractTemplate(arg Expr, lookup TypeLookup) (string, templateState) {
	if lookup == nil {
		lookup = noLookup{}
	}

	switch e := arg.(type) {
	case Literal:
		if e.Kind != LiteralString {
			return "", templateNotString
		}
		return e.Value, templateResolved
	case VariableRef:
		if s, ok := lookup.SingleStringLiteral(e.Name); ok {
			return s, templateResolved
		}
	}

	return "", templateUnresolved
}

// describeExpr names an expression shape for messages.
func describeExpr(e Expr) string {
	switch v := e.(type) {
	case Literal:
		return string(v.Kind) + " literal"
	case VariableRef:
		return "variable " + v.Name
	case CollectionLiteral:
		return "collection literal"
	case Other:
		if v.Desc != "" {
			return v.Desc
		}
	}
	return "expression"
}
