package validator

import "strconv"

// Binding is the set of values a call supplies for its placeholders. It is
// either positional (Named == false) or named.
type Binding struct {
	// Named is set when the first extra argument is a collection literal.
	Named bool
	// Values holds the positional arguments in call order.
	Values []Expr
	// Entries holds the first-level entries of the collection literal.
	Entries []BoundEntry
	// Trailing counts the arguments that followed the collection literal.
	Trailing int
}

// BoundEntry is one collection entry. Unkeyed entries carry a positional
// fallback key that is only used for counting.
type BoundEntry struct {
	Key   string
	Keyed bool
	Value Expr
}

// Len returns the number of values the binding supplies.
func (b Binding) Len() int {
	if b.Named {
		return len(b.Entries)
	}
	return len(b.Values)
}

// values returns every bound value in order.
func (b Binding) values() []Expr {
	if !b.Named {
		return b.Values
	}
	out := make([]Expr, len(b.Entries))
	for i, e := range b.Entries {
		out[i] = e.Value
	}
	return out
}

// ResolveArguments builds the binding for the arguments that follow the
// template. A collection literal in first position makes the binding named;
// anything else is positional. Nested collections are not descended into.
func ResolveArguments(rest []Expr) Binding {
	if len(rest) == 0 {
		return Binding{}
	}

	coll, ok := rest[0].(CollectionLiteral)
	if !ok {
		values := make([]Expr, len(rest))
		copy(values, rest)
		return Binding{Values: values}
	}

	entries := make([]BoundEntry, 0, len(coll.Entries))
	for i, e := range coll.Entries {
		if lit, ok := e.Key.(Literal); ok && lit.Kind == LiteralString {
			entries = append(entries, BoundEntry{Key: lit.Value, Keyed: true, Value: e.Value})
			continue
		}
		entries = append(entries, BoundEntry{Key: strconv.Itoa(i), Value: e.Value})
	}

	return Binding{
		Named:    true,
		Entries:  entries,
		Trailing: len(rest) - 1,
	}
}
