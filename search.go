package hexword

import (
	"crosswarped.com/hexword/pkg/automaton"
)

type sealed interface {
	search()
}

// Search is the constraint a line's letters must satisfy. It is a closed
// set of two variants, *Expression and *Function; values of other types
// cannot be constructed outside this package.
type Search interface {
	sealed // Implemented only by *Expression and *Function.

	// PartiallyMatches returns false only when no completion of candidate
	// can satisfy the constraint. It is a pruning test, not acceptance.
	PartiallyMatches(candidate string) bool

	// FullyMatches reports whether candidate, as a finished line, satisfies
	// the constraint.
	FullyMatches(candidate string) bool

	String() string
}

// Expression is a Search backed by a regular-language pattern. The pattern
// always has to match the whole line; explicit ^ and $ are accepted.
type Expression struct {
	pattern string
	matcher *automaton.Matcher
}

// NewExpression compiles pattern. Malformed patterns are rejected here so
// that matching never fails later.
func NewExpression(pattern string) (*Expression, error) {
	m, err := automaton.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Expression{pattern: pattern, matcher: m}, nil
}

// MustExpression is like NewExpression but panics on error.
func MustExpression(pattern string) *Expression {
	e, err := NewExpression(pattern)
	if err != nil {
		panic(err)
	}
	return e
}

func (*Expression) search() {}

func (e *Expression) PartiallyMatches(candidate string) bool {
	return e.matcher.PartiallyMatches(candidate)
}

func (e *Expression) FullyMatches(candidate string) bool {
	return e.matcher.Matches(candidate)
}

func (e *Expression) String() string {
	return e.pattern
}

// Predicate decides whether a candidate string is acceptable. Predicates
// are called from several goroutines at once and must not mutate shared
// state.
type Predicate func(candidate string) bool

// Function is a Search backed by an arbitrary predicate, for constraints
// outside regular languages such as back-references. The predicate is used
// both for pruning and for final acceptance, so it must accept every prefix
// of a string it would accept in full.
type Function struct {
	name string
	f    Predicate
}

// NewFunction wraps f. The name is only used for display.
func NewFunction(name string, f Predicate) *Function {
	return &Function{name: name, f: f}
}

func (*Function) search() {}

func (f *Function) PartiallyMatches(candidate string) bool {
	return f.f(candidate)
}

func (f *Function) FullyMatches(candidate string) bool {
	return f.f(candidate)
}

func (f *Function) String() string {
	return "func:" + f.name
}
