package validator

// LiteralKind identifies the scalar kind of a Literal.
type LiteralKind string

const (
	LiteralString LiteralKind = "string"
	LiteralInt    LiteralKind = "int"
	LiteralFloat  LiteralKind = "float"
	LiteralImag   LiteralKind = "imag"
	LiteralChar   LiteralKind = "char"
	LiteralBool   LiteralKind = "bool"
)

// Expr is an argument expression of a translation call. The set of
// implementations is closed: Literal, VariableRef, CollectionLiteral and
// Other.
type Expr interface {
	expr()
}

// Literal is a scalar constant. Value holds the decoded text for strings and
// the source spelling for everything else.
type Literal struct {
	Kind  LiteralKind `json:"kind"`
	Value string      `json:"value"`
}

// VariableRef names a value whose type and content are known only through a
// TypeLookup. Name is the host's rendering of the expression (e.g. "msg" or
// "user.Name").
type VariableRef struct {
	Name string `json:"name"`
}

// CollectionLiteral is a literal key/value or list collection. Only its first
// level is ever examined.
type CollectionLiteral struct {
	Entries []Entry `json:"entries"`
}

// Entry is one element of a CollectionLiteral. Key is nil for list elements.
type Entry struct {
	Key   Expr `json:"key,omitempty"`
	Value Expr `json:"value"`
}

// Other is any expression shape the engine has no special knowledge of.
type Other struct {
	Desc string `json:"desc,omitempty"`
}

func (Literal) expr()           {}
func (VariableRef) expr()       {}
func (CollectionLiteral) expr() {}
func (Other) expr()             {}

// Location is the source span of a whole call expression.
type Location struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine,omitempty"`
	EndColumn int    `json:"endColumn,omitempty"`
}

// Call is one invocation of a translation function.
type Call struct {
	// Function is the name the host matched the call by.
	Function string
	// Args are the call arguments in source order; Args[0] is the template.
	Args []Expr
	// Spread is set when the last argument is expanded with "...".
	Spread bool
	// Location spans the full call expression.
	Location Location
}

// Variant is the placeholder naming scheme of a template.
type Variant string

const (
	// Positional templates use exactly "%1".."%n" in order.
	Positional Variant = "positional"
	// Named templates use any other naming.
	Named Variant = "named"
)

// Outcome is the top-level disposition of one call analysis.
type Outcome string

const (
	// OutcomeAnalyzed means the template was resolved and checked.
	OutcomeAnalyzed Outcome = "analyzed"
	// OutcomeSkipped means the template (or argument count) could not be
	// determined statically; no issues are reported.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeMalformed means the host passed a call with no arguments.
	OutcomeMalformed Outcome = "malformed"
)

// IssueKind classifies an analysis issue.
type IssueKind string

const (
	ExpectedString        IssueKind = "ExpectedString"
	TooFewArguments       IssueKind = "TooFewArguments"
	TooManyArguments      IssueKind = "TooManyArguments"
	ExpectedArray         IssueKind = "ExpectedArray"
	MissingPlaceholderKey IssueKind = "MissingPlaceholderKey"
	InvalidPlaceholderKey IssueKind = "InvalidPlaceholderKey"
	UnprintableValue      IssueKind = "UnprintableValue"
	// UnusedPlaceholderKey is only reported under Policy.ReportUnusedKeys.
	UnusedPlaceholderKey IssueKind = "UnusedPlaceholderKey"
)

// Issue is a single problem found at a call site.
type Issue struct {
	Kind     IssueKind `json:"kind"`
	Message  string    `json:"message"`
	Location Location  `json:"location"`
	// Key is the placeholder key an issue refers to, when there is one.
	Key string `json:"key,omitempty"`
}

// Result is the complete output of one Analyze invocation.
type Result struct {
	Outcome      Outcome  `json:"outcome"`
	Template     string   `json:"template,omitempty"`
	Placeholders []string `json:"placeholders,omitempty"`
	Variant      Variant  `json:"variant,omitempty"`
	Issues       []Issue  `json:"issues,omitempty"`
	// UnusedKeys lists collection keys that no placeholder refers to.
	UnusedKeys []string `json:"unusedKeys,omitempty"`
}

// Policy toggles checks whose strictness is a project decision.
type Policy struct {
	// StrictPrintability rejects values whose type cannot be proven
	// printable, instead of accepting them.
	StrictPrintability bool
	// ReportUnusedKeys reports collection keys that no placeholder uses.
	ReportUnusedKeys bool
}

// DefaultPolicy accepts unknown value types and ignores unused keys.
var DefaultPolicy = Policy{}
