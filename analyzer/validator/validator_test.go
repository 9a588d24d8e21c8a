package validator

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoc = Location{File: "main.go", Line: 10, Column: 2, EndLine: 10, EndColumn: 30}

func call(args ...Expr) Call {
	return Call{Function: "i18n.T", Args: args, Location: testLoc}
}

func num(v string) Literal { return Literal{Kind: LiteralInt, Value: v} }

func ref(name string) VariableRef { return VariableRef{Name: name} }

func coll(kv ...Expr) CollectionLiteral {
	var c CollectionLiteral
	for i := 0; i+1 < len(kv); i += 2 {
		c.Entries = append(c.Entries, Entry{Key: kv[i], Value: kv[i+1]})
	}
	return c
}

func kinds(issues []Issue) []IssueKind {
	var out []IssueKind
	for _, i := range issues {
		out = append(out, i.Kind)
	}
	return out
}

// sharedLookup is the type table used across tests.
var sharedLookup = MapLookup{
	Literals: map[string]string{
		"greeting": "Hello %name",
		"counter":  "You have %1 items",
	},
	Printing: map[string]Printability{
		"userName": Printable,
		"count":    Printable,
		"user":     Unprintable,
		"anything": PrintUnknown,
	},
	Collections: map[string]bool{
		"params": true,
	},
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name    string
		call    Call
		policy  Policy
		outcome Outcome
		want    []IssueKind
	}{
		// --- End-to-end examples ---
		{
			name:    "positional ok",
			call:    call(str("Hello %1, you have %2 items"), str("Bob"), num("5")),
			outcome: OutcomeAnalyzed,
		},
		{
			name:    "positional too few",
			call:    call(str("Hello %1")),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{TooFewArguments},
		},
		{
			name:    "named ok",
			call:    call(str("Hello %name"), coll(str("name"), str("Bob"))),
			outcome: OutcomeAnalyzed,
		},
		{
			name:    "named missing key",
			call:    call(str("Hello %name"), coll(str("other"), str("Bob"))),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{MissingPlaceholderKey},
		},
		{
			name:    "named without collection",
			call:    call(str("Hi %name"), str("Bob")),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{ExpectedArray},
		},
		{
			name:    "unresolvable template variable",
			call:    call(ref("dynamic"), str("Bob")),
			outcome: OutcomeSkipped,
		},

		// --- Template extraction ---
		{
			name:    "template from lookup",
			call:    call(ref("greeting"), coll(str("name"), ref("userName"))),
			outcome: OutcomeAnalyzed,
		},
		{
			name:    "template from lookup with error",
			call:    call(ref("counter")),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{TooFewArguments},
		},
		{
			name:    "template is other expression",
			call:    call(Other{Desc: "call expression"}, str("x")),
			outcome: OutcomeSkipped,
		},
		{
			name:    "template is collection",
			call:    call(coll()),
			outcome: OutcomeSkipped,
		},
		{
			name:    "template is number",
			call:    call(num("42")),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{ExpectedString},
		},
		{
			name:    "spread arguments",
			call:    Call{Function: "T", Args: []Expr{str("%1 %2"), ref("args")}, Spread: true},
			outcome: OutcomeSkipped,
		},

		// --- Positional path ---
		{
			name:    "no placeholders no args",
			call:    call(str("Hello")),
			outcome: OutcomeAnalyzed,
		},
		{
			name:    "no placeholders with args",
			call:    call(str("Hello"), str("x")),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{TooManyArguments},
		},
		{
			name:    "too many",
			call:    call(str("%1"), str("a"), str("b")),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{TooManyArguments},
		},
		{
			name:    "count failure hides printability",
			call:    call(str("%1 %2"), ref("user")),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{TooFewArguments},
		},
		{
			name:    "unprintable variable",
			call:    call(str("%1 %2"), ref("user"), ref("count")),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{UnprintableValue},
		},
		{
			name:    "unprintable reported once",
			call:    call(str("%1 %2"), ref("user"), ref("user")),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{UnprintableValue},
		},
		{
			name:    "unknown and other accepted",
			call:    call(str("%1 %2"), ref("anything"), Other{Desc: "call expression"}),
			outcome: OutcomeAnalyzed,
		},
		{
			name:    "positional with collection counts entries",
			call:    call(str("%1 %2"), coll(nil, str("a"), nil, str("b"))),
			outcome: OutcomeAnalyzed,
		},
		{
			name:    "positional with short collection",
			call:    call(str("%1 %2"), coll(nil, str("a"))),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{TooFewArguments},
		},
		{
			name:    "collection with trailing arguments",
			call:    call(str("%1"), coll(nil, str("a")), str("b")),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{TooManyArguments},
		},
		{
			name:    "empty collection supplies no values",
			call:    call(str("%1"), coll()),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{TooFewArguments},
		},

		// --- Named path ---
		{
			name:    "named all missing reported",
			call:    call(str("%first %last %first"), coll(str("x"), str("1"))),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{MissingPlaceholderKey, MissingPlaceholderKey},
		},
		{
			name:    "named no arguments",
			call:    call(str("Hi %name")),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{ExpectedArray},
		},
		{
			name:    "named with collection variable of unknown contents",
			call:    call(str("Hi %name"), ref("params")),
			outcome: OutcomeSkipped,
		},
		{
			name:    "positional with collection variable",
			call:    call(str("Hi %1"), ref("params")),
			outcome: OutcomeAnalyzed,
		},
		{
			name:    "named out of order numbers",
			call:    call(str("%2 %1"), str("a"), str("b")),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{ExpectedArray},
		},
		{
			name:    "named out of order numbers with collection",
			call:    call(str("%2 %1"), coll(str("1"), str("a"), str("2"), str("b"))),
			outcome: OutcomeAnalyzed,
		},
		{
			name:    "named invalid key",
			call:    call(str("%name"), coll(str("name"), str("Bob"), ref("k"), str("x"))),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{InvalidPlaceholderKey},
		},
		{
			name:    "named missing before invalid",
			call:    call(str("%name"), coll(nil, str("Bob"))),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{MissingPlaceholderKey, InvalidPlaceholderKey},
		},
		{
			name:    "named key problems hide printability",
			call:    call(str("%name %age"), coll(str("name"), ref("user"))),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{MissingPlaceholderKey},
		},
		{
			name:    "named unprintable",
			call:    call(str("%name"), coll(str("name"), ref("user"))),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{UnprintableValue},
		},
		{
			name:    "named extra keys accepted by default",
			call:    call(str("%name"), coll(str("name"), str("a"), str("extra"), str("b"))),
			outcome: OutcomeAnalyzed,
		},
		{
			name:    "named collection with trailing arguments",
			call:    call(str("%name"), coll(str("name"), str("a")), str("b")),
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{TooManyArguments},
		},

		// --- Policy ---
		{
			name:    "strict rejects unknown",
			call:    call(str("%1"), ref("anything")),
			policy:  Policy{StrictPrintability: true},
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{UnprintableValue},
		},
		{
			name:    "strict rejects other",
			call:    call(str("%name"), coll(str("name"), Other{})),
			policy:  Policy{StrictPrintability: true},
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{UnprintableValue},
		},
		{
			name:    "strict accepts literals and printable variables",
			call:    call(str("%1 %2 %3"), str("a"), Literal{Kind: LiteralBool, Value: "true"}, ref("count")),
			policy:  Policy{StrictPrintability: true},
			outcome: OutcomeAnalyzed,
		},
		{
			name:    "unused keys reported on request",
			call:    call(str("%name"), coll(str("name"), str("a"), str("extra"), str("b"))),
			policy:  Policy{ReportUnusedKeys: true},
			outcome: OutcomeAnalyzed,
			want:    []IssueKind{UnusedPlaceholderKey},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Analyze(tt.call, sharedLookup, tt.policy)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, res.Outcome)
			if diff := cmp.Diff(tt.want, kinds(res.Issues)); diff != "" {
				t.Errorf("issue kinds mismatch (-want +got):\n%s\nresult: %s", diff, spew.Sdump(res))
			}
			for _, issue := range res.Issues {
				assert.Equal(t, tt.call.Location, issue.Location)
				assert.NotEmpty(t, issue.Message)
			}
		})
	}
}

func TestAnalyzeMalformedCall(t *testing.T) {
	res, err := Analyze(Call{Function: "T", Location: testLoc}, sharedLookup, DefaultPolicy)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedCall))
	assert.Equal(t, OutcomeMalformed, res.Outcome)
	assert.Empty(t, res.Issues)
}

func TestAnalyzeNilLookup(t *testing.T) {
	res, err := Analyze(call(ref("greeting")), nil, DefaultPolicy)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.Empty(t, res.Issues)
}

func TestAnalyzeResultDetails(t *testing.T) {
	res, err := Analyze(
		call(str("Dear %title %name"), coll(str("name"), str("Bob"), str("unused"), str("x"))),
		sharedLookup, DefaultPolicy,
	)
	require.NoError(t, err)

	assert.Equal(t, "Dear %title %name", res.Template)
	assert.Equal(t, []string{"title", "name"}, res.Placeholders)
	assert.Equal(t, Named, res.Variant)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "title", res.Issues[0].Key)
	assert.Equal(t, "Missing value for placeholder %title", res.Issues[0].Message)
	assert.Equal(t, []string{"unused"}, res.UnusedKeys)
}

func TestAnalyzeRepeatedMissingPlaceholder(t *testing.T) {
	res, err := Analyze(call(str("%a and %a, %b then %a"), coll(str("c"), str("x"))), nil, DefaultPolicy)
	require.NoError(t, err)

	// Duplicates stay in Placeholders but each missing name is reported once.
	assert.Equal(t, []string{"a", "a", "b", "a"}, res.Placeholders)
	require.Len(t, res.Issues, 2)
	assert.Equal(t, MissingPlaceholderKey, res.Issues[0].Kind)
	assert.Equal(t, "a", res.Issues[0].Key)
	assert.Equal(t, MissingPlaceholderKey, res.Issues[1].Kind)
	assert.Equal(t, "b", res.Issues[1].Key)
}

func TestPositionalCountLaw(t *testing.T) {
	for p := 0; p <= 5; p++ {
		var parts []string
		for i := 1; i <= p; i++ {
			parts = append(parts, fmt.Sprintf("%%%d", i))
		}
		template := strings.Join(parts, " ")

		for a := 0; a <= 5; a++ {
			args := []Expr{str(template)}
			for range a {
				args = append(args, str("v"))
			}

			res, err := Analyze(call(args...), nil, DefaultPolicy)
			require.NoError(t, err)

			var want []IssueKind
			switch {
			case p > a:
				want = []IssueKind{TooFewArguments}
			case p < a:
				want = []IssueKind{TooManyArguments}
			}
			assert.Equal(t, want, kinds(res.Issues), "P=%d A=%d", p, a)
		}
	}
}

func TestNamedCompletenessLaw(t *testing.T) {
	names := []string{"alpha", "beta", "gamma", "delta"}
	template := "%alpha %beta %gamma %delta"

	// Every subset of names supplied as keys.
	for mask := 0; mask < 1<<len(names); mask++ {
		var kv []Expr
		present := map[string]bool{}
		for i, n := range names {
			if mask&(1<<i) != 0 {
				kv = append(kv, str(n), str("v"))
				present[n] = true
			}
		}

		res, err := Analyze(call(str(template), coll(kv...)), nil, DefaultPolicy)
		require.NoError(t, err)

		var missing []string
		for _, issue := range res.Issues {
			require.Equal(t, MissingPlaceholderKey, issue.Kind)
			missing = append(missing, issue.Key)
		}

		var want []string
		for _, n := range names {
			if !present[n] {
				want = append(want, n)
			}
		}
		assert.Equal(t, want, missing, "mask=%04b", mask)
	}
}

func TestValidate(t *testing.T) {
	issues := Validate(
		[]string{"1", "2"},
		ResolveArguments([]Expr{str("a")}),
		nil, DefaultPolicy, testLoc,
	)
	require.Len(t, issues, 1)
	assert.Equal(t, TooFewArguments, issues[0].Kind)
	assert.Equal(t, testLoc, issues[0].Location)
	assert.Contains(t, issues[0].Message, "the translation function")
}

func TestExtractTemplate(t *testing.T) {
	tests := []struct {
		name string
		arg  Expr
		want string
		ok   bool
	}{
		{name: "string literal", arg: str("Hi %1"), want: "Hi %1", ok: true},
		{name: "empty string literal", arg: str(""), want: "", ok: true},
		{name: "known variable", arg: ref("greeting"), want: "Hello %name", ok: true},
		{name: "unknown variable", arg: ref("other"), ok: false},
		{name: "number", arg: num("1"), ok: false},
		{name: "collection", arg: coll(), ok: false},
		{name: "other", arg: Other{}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTemplate(tt.arg, sharedLookup)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapLookup(t *testing.T) {
	assert.Equal(t, Printable, sharedLookup.Printability("greeting"))
	assert.Equal(t, Unprintable, sharedLookup.Printability("user"))
	assert.Equal(t, PrintUnknown, sharedLookup.Printability("missing"))
	assert.Equal(t, "unprintable", Unprintable.String())
}
