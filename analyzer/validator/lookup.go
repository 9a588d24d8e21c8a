package validator

// Printability is what a TypeLookup knows about whether a value can be
// rendered as text.
type Printability int

const (
	// PrintUnknown means the type could not be determined or is too broad
	// (e.g. an empty interface).
	PrintUnknown Printability = iota
	// Printable means the type is provably string-compatible.
	Printable
	// Unprintable means the type is known and is not string-compatible.
	Unprintable
)

func (p Printability) String() string {
	switch p {
	case Printable:
		return "printable"
	case Unprintable:
		return "unprintable"
	default:
		return "unknown"
	}
}

// TypeLookup is the read-only view of the host's static type information.
// Implementations must be safe for concurrent use.
type TypeLookup interface {
	// SingleStringLiteral returns the string value of the named variable
	// when it is statically proven to hold exactly one literal value.
	SingleStringLiteral(name string) (string, bool)
	// Printability reports whether the named variable's type can be
	// rendered as text.
	Printability(name string) Printability
}

// CollectionLookup is optionally implemented by a TypeLookup that can tell
// when a variable holds a collection whose contents are not known. A named
// template given such a variable cannot be checked and is skipped instead of
// being reported as ExpectedArray.
type CollectionLookup interface {
	IsCollection(name string) bool
}

// MapLookup is a TypeLookup backed by fixed tables.
type MapLookup struct {
	Literals    map[string]string
	Printing    map[string]Printability
	Collections map[string]bool
}

// IsCollection implements CollectionLookup.
func (m MapLookup) IsCollection(name string) bool {
	return m.Collections[name]
}

// SingleStringLiteral implements TypeLookup.
func (m MapLookup) SingleStringLiteral(name string) (string, bool) {
	s, ok := m.Literals[name]
	return s, ok
}

// Printability implements TypeLookup. Variables with a known literal value
// are printable.
func (m MapLookup) Printability(name string) Printability {
	if p, ok := m.Printing[name]; ok {
		return p
	}
	if _, ok := m.Literals[name]; ok {
		return Printable
	}
	return PrintUnknown
}

// noLookup knows nothing.
type noLookup struct{}

func (noLookup) SingleStringLiteral(string) (string, bool) { return "", false }
func (noLookup) Printability(string) Printability         { return PrintUnknown }
