// Package hexword solves hexagonal regex crosswords by ring-by-ring
// constraint propagation.
//
// Lines start on the outer ring of a hexagon and walk toward the center.
// The solver visits the rings from the outside in; at every cell of a ring
// it extends each crossing line's surviving prefixes by one letter and keeps
// only the letters that all crossing lines accept. Lines that run through
// the center are finished by a second pass over the rings from the center
// back out.
package hexword

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"crosswarped.com/hexword/pkg/hex"
	"crosswarped.com/hexword/pkg/primitives"
)

// DefaultMultiplicity is the number of lines crossing each puzzle cell when
// no other value is configured.
const DefaultMultiplicity = 2

// Crossword holds the lines of a puzzle, their constraints and the
// candidate prefixes found so far.
//
// A Crossword is not safe for concurrent mutation; the solver commits all
// updates of a ring from a single goroutine.
type Crossword struct {
	radius       int
	multiplicity int

	// lines keeps registration order so every walk over lines is
	// deterministic.
	lines       []Line
	constraints map[Line]Search
	lengths     map[Line]int

	// crossings lists, per cell, the lines spanning it and the position at
	// which they do, in registration order.
	crossings map[hex.Hex][]crossing

	// A nil entry means no ring has touched the line yet; a ring that
	// prunes everything leaves an empty, non-nil slice.
	candidates map[Line][]string

	// settled holds the letters of every cell a ring has already filled.
	settled map[hex.Hex]primitives.CharSet
}

type crossing struct {
	line     Line
	position int
}

// Option configures a Crossword.
type Option func(*Crossword)

// WithMultiplicity sets how many lines must cross every puzzle cell.
func WithMultiplicity(n int) Option {
	return func(c *Crossword) {
		c.multiplicity = n
	}
}

// New returns an empty crossword of the given radius.
func New(radius int, opts ...Option) *Crossword {
	c := &Crossword{
		radius:       radius,
		multiplicity: DefaultMultiplicity,
		constraints:  make(map[Line]Search),
		lengths:      make(map[Line]int),
		crossings:    make(map[hex.Hex][]crossing),
		candidates:   make(map[Line][]string),
		settled:      make(map[hex.Hex]primitives.CharSet),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Crossword) Radius() int {
	return c.radius
}

func (c *Crossword) Multiplicity() int {
	return c.multiplicity
}

// Add registers a line with its constraint. The line must start on the
// outer ring.
func (c *Crossword) Add(line Line, search Search) error {
	if _, ok := c.constraints[line]; ok {
		return &ConfigError{Kind: DuplicateLine, Line: line}
	}
	if !line.Direction.Valid() {
		return &ConfigError{Kind: InvalidLine, Line: line, Err: fmt.Errorf("unknown direction %d", int(line.Direction))}
	}
	if ring := line.Start.Length(); ring != c.radius {
		return &ConfigError{Kind: InvalidLine, Line: line, Err: fmt.Errorf("start %v lies on ring %d, want outer ring %d", line.Start, ring, c.radius)}
	}
	if search == nil {
		return &ConfigError{Kind: Pattern, Line: line, Err: errors.New("missing constraint")}
	}
	cells := line.Cells(c.radius)
	c.lines = append(c.lines, line)
	c.constraints[line] = search
	c.lengths[line] = len(cells)
	for k, cell := range cells {
		c.crossings[cell] = append(c.crossings[cell], crossing{line: line, position: k})
	}
	c.candidates[line] = nil
	return nil
}

// Lines returns the registered lines in registration order.
func (c *Crossword) Lines() []Line {
	return slices.Clone(c.lines)
}

// Search returns the constraint of line.
func (c *Crossword) Search(line Line) (Search, bool) {
	s, ok := c.constraints[line]
	return s, ok
}

// LengthOf returns the number of cells line spans.
func (c *Crossword) LengthOf(line Line) int {
	return c.lengths[line]
}

// span is the number of positions the sweep fills: the length of the
// longest line.
func (c *Crossword) span() int {
	n := 0
	for _, l := range c.lengths {
		n = max(n, l)
	}
	return n
}

// CandidatesOf returns a copy of the current candidate prefixes of line.
// A line no ring has touched yet has the single empty prefix.
func (c *Crossword) CandidatesOf(line Line) []string {
	set := c.candidates[line]
	if set == nil {
		return []string{""}
	}
	return slices.Clone(set)
}

// UpdateCandidates replaces the candidate prefixes of line.
func (c *Crossword) UpdateCandidates(line Line, set []string) {
	if _, ok := c.constraints[line]; !ok {
		return
	}
	if set == nil {
		set = []string{}
	}
	c.candidates[line] = set
}

// Reset forgets every candidate so the crossword can be solved again.
func (c *Crossword) Reset() {
	for _, line := range c.lines {
		c.candidates[line] = nil
	}
	clear(c.settled)
}

// settle records the letters left for cell after the task at position and
// narrows every line that filled cell at an earlier position to them.
func (c *Crossword) settle(cell hex.Hex, position int, letters primitives.CharSet) {
	prev, revisit := c.settled[cell]
	c.settled[cell] = letters
	if !revisit || prev.Equal(&letters) {
		return
	}
	for _, x := range c.crossings[cell] {
		set := c.candidates[x.line]
		if x.position >= position || len(set) == 0 {
			continue
		}
		kept := primitives.MakePossibleLines(len(set[0]), set).FilterAny(&letters, x.position)
		c.candidates[x.line] = append([]string{}, slices.Collect(kept.Iterate())...)
	}
}

// Clone returns an independent copy sharing the (immutable) constraints.
func (c *Crossword) Clone() *Crossword {
	out := New(c.radius, WithMultiplicity(c.multiplicity))
	for _, line := range c.lines {
		out.lines = append(out.lines, line)
		out.constraints[line] = c.constraints[line]
		out.lengths[line] = c.lengths[line]
		for k, cell := range line.Cells(c.radius) {
			out.crossings[cell] = append(out.crossings[cell], crossing{line: line, position: k})
		}
		if set := c.candidates[line]; set != nil {
			out.candidates[line] = slices.Clone(set)
		} else {
			out.candidates[line] = nil
		}
	}
	maps.Copy(out.settled, c.settled)
	return out
}

// Validate reports every configuration problem at once: the radius and
// multiplicity bounds, lines that do not walk inward one ring per step to
// the center (and, past it, outward one ring per step), and cells crossed
// by a number of lines other than the multiplicity.
func (c *Crossword) Validate() error {
	if c.radius < 0 {
		return &ConfigError{Kind: Bounds, Err: fmt.Errorf("radius %d is negative", c.radius)}
	}
	if c.multiplicity < 1 {
		return &ConfigError{Kind: Bounds, Err: fmt.Errorf("multiplicity %d is below 1", c.multiplicity)}
	}
	if len(c.lines) == 0 {
		return &ConfigError{Kind: Empty, Err: errors.New("no lines")}
	}

	var errs []error
	for _, line := range c.lines {
		if err := line.checkPath(c.radius); err != nil {
			errs = append(errs, &ConfigError{Kind: InvalidLine, Line: line, Err: err})
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for ring := c.radius; ring >= 0; ring-- {
		for _, cell := range hex.Ring(hex.Origin, ring) {
			if _, err := c.BuildTask(ring, cell); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
