// Package automaton steps a compiled regular expression one character at a
// time.
//
// The standard regexp package only answers whole-string questions. A
// crossword solver needs to know, after every letter, whether the prefix
// can still grow into a match (not dead) and whether it is a match right
// now. Matcher simulates the compiled regexp/syntax program as a set of
// threads, so each State is the set of instructions the input can be at.
//
// Matching is always anchored at both ends: a thread that reaches the
// match instruction before the input is exhausted is dropped.
package automaton

import (
	"fmt"
	"regexp/syntax"
	"slices"
)

// SyntaxError reports a pattern that could not be compiled.
type SyntaxError struct {
	Pattern string
	Err     error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("automaton: compile %q: %v", e.Pattern, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Matcher is a compiled pattern. It is immutable and safe for concurrent
// use.
type Matcher struct {
	pattern string
	prog    *syntax.Prog
}

// State is a position of the matcher after some prefix of the input.
// States are values; Step never modifies its argument.
type State struct {
	// pcs are pending threads. Empty-width assertions are kept unresolved
	// until the next rune (or end of input) is known.
	pcs  []uint32
	prev rune
}

// Compile parses pattern with Perl syntax and prepares it for stepping.
func Compile(pattern string) (*Matcher, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, &SyntaxError{Pattern: pattern, Err: err}
	}
	prog, err := syntax.Compile(re.Simplify())
	if err != nil {
		return nil, &SyntaxError{Pattern: pattern, Err: err}
	}
	return &Matcher{pattern: pattern, prog: prog}, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// patterns known at build time.
func MustCompile(pattern string) *Matcher {
	m, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Matcher) String() string {
	return m.pattern
}

// Start returns the state before any input.
func (m *Matcher) Start() State {
	return State{pcs: []uint32{uint32(m.prog.Start)}, prev: -1}
}

// Step consumes r.
func (m *Matcher) Step(s State, r rune) State {
	next := State{prev: r}
	if len(s.pcs) == 0 {
		return next
	}

	seen := make([]bool, len(m.prog.Inst))
	for _, pc := range m.expand(s.pcs, syntax.EmptyOpContext(s.prev, r)) {
		inst := &m.prog.Inst[pc]
		if !consumes(inst, r) {
			continue
		}
		if !seen[inst.Out] {
			seen[inst.Out] = true
			next.pcs = append(next.pcs, inst.Out)
		}
	}
	slices.Sort(next.pcs)
	return next
}

// Run consumes every rune of input starting from the start state.
func (m *Matcher) Run(input string) State {
	return m.Advance(m.Start(), input)
}

// Advance consumes every rune of input starting from s.
func (m *Matcher) Advance(s State, input string) State {
	for _, r := range input {
		if len(s.pcs) == 0 {
			return State{prev: r}
		}
		s = m.Step(s, r)
	}
	return s
}

// IsDead reports whether no continuation of the consumed input can match.
//
// Assertions that depend on the next character are assumed satisfiable,
// so IsDead never reports false negatives; it may keep a thread alive
// behind an assertion that later fails.
func (m *Matcher) IsDead(s State) bool {
	if len(s.pcs) == 0 {
		return true
	}
	return len(m.expand(s.pcs, ^syntax.EmptyOp(0))) == 0
}

// IsMatch reports whether the consumed input is a complete match.
func (m *Matcher) IsMatch(s State) bool {
	if len(s.pcs) == 0 {
		return false
	}
	for _, pc := range m.expand(s.pcs, syntax.EmptyOpContext(s.prev, -1)) {
		if m.prog.Inst[pc].Op == syntax.InstMatch {
			return true
		}
	}
	return false
}

// PartiallyMatches reports whether input is a prefix of some match.
func (m *Matcher) PartiallyMatches(input string) bool {
	return !m.IsDead(m.Run(input))
}

// Matches reports whether input matches the whole pattern.
func (m *Matcher) Matches(input string) bool {
	return m.IsMatch(m.Run(input))
}

// Snapshot describes the matcher after one consumed rune.
type Snapshot struct {
	Rune  rune
	Dead  bool
	Match bool
}

// Trace steps through input and records the state after every rune.
// Stepping continues after the matcher dies so every rune is reported.
func (m *Matcher) Trace(input string) []Snapshot {
	var out []Snapshot
	s := m.Start()
	for _, r := range input {
		s = m.Step(s, r)
		out = append(out, Snapshot{Rune: r, Dead: m.IsDead(s), Match: m.IsMatch(s)})
	}
	return out
}

// expand follows every non-consuming instruction reachable from pcs.
// Empty-width assertions are crossed when flags satisfy them. The result
// holds only rune-consuming and match instructions.
func (m *Matcher) expand(pcs []uint32, flags syntax.EmptyOp) []uint32 {
	seen := make([]bool, len(m.prog.Inst))
	var out []uint32
	stack := slices.Clone(pcs)
	for len(stack) > 0 {
		pc := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[pc] {
			continue
		}
		seen[pc] = true

		inst := &m.prog.Inst[pc]
		switch inst.Op {
		case syntax.InstAlt, syntax.InstAltMatch:
			stack = append(stack, inst.Arg, inst.Out)
		case syntax.InstCapture, syntax.InstNop:
			stack = append(stack, inst.Out)
		case syntax.InstEmptyWidth:
			if syntax.EmptyOp(inst.Arg)&^flags == 0 {
				stack = append(stack, inst.Out)
			}
		case syntax.InstFail:
		default:
			out = append(out, pc)
		}
	}
	return out
}

func consumes(inst *syntax.Inst, r rune) bool {
	switch inst.Op {
	case syntax.InstRune, syntax.InstRune1:
		return inst.MatchRune(r)
	case syntax.InstRuneAny:
		return true
	case syntax.InstRuneAnyNotNL:
		return r != '\n'
	}
	return false
}
