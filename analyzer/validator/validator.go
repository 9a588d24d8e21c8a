// Package validator checks translation calls against the placeholders of
// their template.
//
// A translation call has the shape
//
//	T(template, args...)
//
// where template contains placeholders of the form %name. Templates whose
// placeholders are exactly %1, %2, ... in order are positional and take
// their values as plain arguments. Every other template is named and takes a
// single collection literal mapping placeholder names to values.
//
// The package never looks at Go syntax. Hosts describe a call with the
// closed Expr model and answer type questions through a TypeLookup. All
// functions are pure and safe for concurrent use.
package validator

import (
	"errors"
	"fmt"
)

// ErrMalformedCall is returned when a call has no template argument.
var ErrMalformedCall = errors.New("translation call has no arguments")

// Analyze checks one translation call.
//
// An unresolvable template yields OutcomeSkipped with no issues. A call with
// no arguments yields OutcomeMalformed and an error wrapping
// ErrMalformedCall. Otherwise the outcome is OutcomeAnalyzed and Issues holds
// every problem found, in the order the checks ran.
func Analyze(call Call, lookup TypeLookup, policy Policy) (Result, error) {
	if len(call.Args) == 0 {
		return Result{Outcome: OutcomeMalformed},
			fmt.Errorf("%s at %s:%d: %w", call.Function, call.Location.File, call.Location.Line, ErrMalformedCall)
	}
	if lookup == nil {
		lookup = noLookup{}
	}

	c := checker{call: call, lookup: lookup, policy: policy}

	template, state := extractTemplate(call.Args[0], lookup)
	switch state {
	case templateUnresolved:
		return Result{Outcome: OutcomeSkipped}, nil
	case templateNotString:
		c.report(ExpectedString, "", "The first argument to %s must be a string, %s given",
			c.name(), describeExpr(call.Args[0]))
		return Result{Outcome: OutcomeAnalyzed, Issues: c.issues}, nil
	}

	placeholders := ScanPlaceholders(template)
	variant := Classify(placeholders)

	result := Result{
		Outcome:      OutcomeAnalyzed,
		Template:     template,
		Placeholders: placeholders,
		Variant:      variant,
	}

	// The number of expanded values is not known statically.
	if call.Spread {
		result.Outcome = OutcomeSkipped
		return result, nil
	}

	binding := ResolveArguments(call.Args[1:])
	if variant == Named && c.opaqueCollection(binding) {
		result.Outcome = OutcomeSkipped
		return result, nil
	}

	result.UnusedKeys = c.validate(placeholders, variant, binding)
	result.Issues = c.issues

	return result, nil
}

// Validate cross-checks placeholders against a binding and returns the
// issues found. loc is attached to every issue.
func Validate(placeholders []string, binding Binding, lookup TypeLookup, policy Policy, loc Location) []Issue {
	if lookup == nil {
		lookup = noLookup{}
	}
	c := checker{
		call:   Call{Location: loc},
		lookup: lookup,
		policy: policy,
	}
	c.validate(placeholders, Classify(placeholders), binding)
	return c.issues
}

// checker accumulates issues for one call.
type checker struct {
	call   Call
	lookup TypeLookup
	policy Policy
	issues []Issue
}

func (c *checker) name() string {
	if c.call.Function == "" {
		return "the translation function"
	}
	return c.call.Function
}

func (c *checker) report(kind IssueKind, key, format string, args ...any) {
	c.issues = append(c.issues, Issue{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: c.call.Location,
		Key:      key,
	})
}

// opaqueCollection reports whether a positional binding is a single
// variable the lookup knows to be a collection of unknown contents.
func (c *checker) opaqueCollection(binding Binding) bool {
	if binding.Named || len(binding.Values) != 1 {
		return false
	}
	ref, ok := binding.Values[0].(VariableRef)
	if !ok {
		return false
	}
	cl, ok := c.lookup.(CollectionLookup)
	return ok && cl.IsCollection(ref.Name)
}

// validate runs the path for variant and returns the unused collection keys.
func (c *checker) validate(placeholders []string, variant Variant, binding Binding) []string {
	if binding.Named && binding.Trailing > 0 {
		c.report(TooManyArguments, "",
			"When the second argument to %s is a collection, it must be the only additional argument",
			c.name())
		return nil
	}

	if variant == Positional {
		c.validatePositional(placeholders, binding)
		return nil
	}
	return c.validateNamed(placeholders, binding)
}

// validatePositional compares counts, then printability. A count mismatch
// ends the check.
func (c *checker) validatePositional(placeholders []string, binding Binding) {
	p, a := len(placeholders), binding.Len()

	switch {
	case p > a:
		c.report(TooFewArguments, "",
			"Template string has %d placeholders, only %d arguments passed to %s", p, a, c.name())
	case p < a:
		c.report(TooManyArguments, "",
			"Template string has %d placeholders, but %d arguments passed to %s", p, a, c.name())
	default:
		c.checkPrintable(binding.values())
	}
}

// validateNamed requires a collection covering every placeholder name. All
// missing and invalid keys are reported before printability is considered.
func (c *checker) validateNamed(placeholders []string, binding Binding) []string {
	if !binding.Named {
		c.report(ExpectedArray, "",
			"Expected the second argument to %s to be a collection literal of placeholder values", c.name())
		return nil
	}

	keys := make(map[string]bool, len(binding.Entries))
	for _, e := range binding.Entries {
		if e.Keyed {
			keys[e.Key] = true
		}
	}

	used := make(map[string]bool, len(placeholders))
	for _, name := range placeholders {
		if used[name] {
			continue
		}
		used[name] = true
		if !keys[name] {
			c.report(MissingPlaceholderKey, name, "Missing value for placeholder %%%s", name)
		}
	}

	for i, e := range binding.Entries {
		if !e.Keyed {
			c.report(InvalidPlaceholderKey, "",
				"Key of placeholder entry %d must be a string literal", i+1)
		}
	}

	var unused []string
	for _, e := range binding.Entries {
		if e.Keyed && !used[e.Key] {
			unused = append(unused, e.Key)
		}
	}

	if len(c.issues) > 0 {
		return unused
	}

	if c.policy.ReportUnusedKeys {
		for _, key := range unused {
			c.report(UnusedPlaceholderKey, key, "Key %q is not used by any placeholder", key)
		}
	}

	c.checkPrintable(binding.values())
	return unused
}

// checkPrintable reports UnprintableValue once, at the first value that
// fails.
func (c *checker) checkPrintable(values []Expr) {
	for _, v := range values {
		if !c.printable(v) {
			c.report(UnprintableValue, "", "Argument passed to %s is not printable: %s",
				c.name(), describeExpr(v))
			return
		}
	}
}

func (c *checker) printable(v Expr) bool {
	switch e := v.(type) {
	case Literal:
		return true
	case VariableRef:
		switch c.lookup.Printability(e.Name) {
		case Printable:
			return true
		case Unprintable:
			return false
		default:
			return !c.policy.StrictPrintability
		}
	case CollectionLiteral:
		return false
	default:
		return !c.policy.StrictPrintability
	}
}
