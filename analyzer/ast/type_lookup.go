package ast

import (
	"go/types"

	"github.com/abiiranathan/go-translate-lint/analyzer/validator"
)

// callLookup implements validator.TypeLookup for the variables named in one
// call. It is populated by the converter and read by the validator.
type callLookup struct {
	vars     map[string]*types.Var
	types    map[string]types.Type
	facts    *literalFacts
	printing *printCache
}

var _ validator.TypeLookup = (*callLookup)(nil)

// add registers a variable expression and returns its reference.
func (cl *callLookup) add(name string, v *types.Var, t types.Type) validator.VariableRef {
	if v != nil {
		cl.vars[name] = v
	}
	if t != nil {
		cl.types[name] = t
	}
	return validator.VariableRef{Name: name}
}

// SingleStringLiteral implements validator.TypeLookup.
func (cl *callLookup) SingleStringLiteral(name string) (string, bool) {
	v, ok := cl.vars[name]
	if !ok {
		return "", false
	}
	return cl.facts.stringValue(v)
}

// Printability implements validator.TypeLookup.
func (cl *callLookup) Printability(name string) validator.Printability {
	if _, ok := cl.SingleStringLiteral(name); ok {
		return validator.Printable
	}
	t, ok := cl.types[name]
	if !ok {
		return validator.PrintUnknown
	}
	return cl.printing.classify(t)
}

// classifyPrintability decides whether values of type t render as text.
//
// Strings, numbers and booleans print. Types whose method set has
// String() string or Error() string print. Byte and rune slices print.
// Interfaces and type parameters may hold anything and are unknown. Other
// concrete types (structs, maps, pointers, channels, functions, other
// slices and arrays) do not print.
func classifyPrintability(t types.Type) validator.Printability {
	if t == nil {
		return validator.PrintUnknown
	}

	if hasTextMethod(t) {
		return validator.Printable
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		switch {
		case u.Kind() == types.Invalid:
			return validator.PrintUnknown
		case u.Kind() == types.UntypedNil, u.Kind() == types.UnsafePointer:
			return validator.Unprintable
		case u.Info()&(types.IsString|types.IsNumeric|types.IsBoolean) != 0:
			return validator.Printable
		}
		return validator.PrintUnknown

	case *types.Interface:
		return validator.PrintUnknown

	case *types.Slice:
		if b, ok := u.Elem().Underlying().(*types.Basic); ok {
			if b.Kind() == types.Byte || b.Kind() == types.Rune {
				return validator.Printable
			}
		}
		return validator.Unprintable

	case *types.Pointer, *types.Struct, *types.Map, *types.Array, *types.Chan, *types.Signature:
		return validator.Unprintable
	}

	return validator.PrintUnknown
}

// hasTextMethod reports whether t's method set has String() string or
// Error() string.
func hasTextMethod(t types.Type) bool {
	mset := types.NewMethodSet(t)
	for _, name := range []string{"String", "Error"} {
		sel := mset.Lookup(nil, name)
		if sel == nil {
			continue
		}
		sig, ok := sel.Type().(*types.Signature)
		if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
			continue
		}
		if isStringType(sig.Results().At(0).Type()) {
			return true
		}
	}
	return false
}

// IsCollection implements validator.CollectionLookup. Map variables whose
// literal is not known are opaque collections.
func (cl *callLookup) IsCollection(name string) bool {
	return isMapType(cl.types[name])
}
