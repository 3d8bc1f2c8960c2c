package hexword

import (
	"iter"
	"slices"
	"strings"

	"crosswarped.com/hexword/pkg/hex"
	"crosswarped.com/hexword/pkg/primitives"
)

// LineResult is the final state of one line.
type LineResult struct {
	Line       Line      `json:"line"`
	Constraint string    `json:"constraint"`
	Cells      []hex.Hex `json:"cells"`

	// Candidates are the full-length strings that satisfy the constraint.
	Candidates []string `json:"candidates"`

	// Rejected survived every partial-match pruning step but failed the
	// final full match (or never reached the line's length).
	Rejected []string `json:"rejected,omitempty"`
}

// Result is the outcome of a solve, one LineResult per line in
// registration order.
type Result struct {
	radius int
	lines  []LineResult
	index  map[Line]int
}

// Finalize applies final acceptance to the current candidates of cw: a
// string is kept only if it has the line's full length and fully matches
// the line's constraint. Everything else moves to the rejected set.
func Finalize(cw *Crossword) *Result {
	r := &Result{
		radius: cw.radius,
		index:  make(map[Line]int, len(cw.lines)),
	}

	for _, line := range cw.lines {
		n := cw.lengths[line]
		search := cw.constraints[line]
		lr := LineResult{
			Line:       line,
			Constraint: search.String(),
			Cells:      line.Cells(cw.radius),
			Candidates: []string{},
		}
		for _, c := range cw.CandidatesOf(line) {
			if len(c) == n && search.FullyMatches(c) {
				lr.Candidates = append(lr.Candidates, c)
				continue
			}
			lr.Rejected = append(lr.Rejected, c)
			rejectedTotal.Inc()
		}
		r.index[line] = len(r.lines)
		r.lines = append(r.lines, lr)
	}
	return r
}

// Lines yields every line result in registration order.
func (r *Result) Lines() iter.Seq[LineResult] {
	return func(yield func(LineResult) bool) {
		for _, lr := range r.lines {
			if !yield(lr) {
				return
			}
		}
	}
}

// Line returns the result of one line.
func (r *Result) Line(line Line) (LineResult, bool) {
	i, ok := r.index[line]
	if !ok {
		return LineResult{}, false
	}
	return r.lines[i], true
}

// Candidates returns the accepted strings of line.
func (r *Result) Candidates(line Line) []string {
	lr, _ := r.Line(line)
	return slices.Clone(lr.Candidates)
}

// Rejected returns the strings of line dropped by final acceptance.
func (r *Result) Rejected(line Line) []string {
	lr, _ := r.Line(line)
	return slices.Clone(lr.Rejected)
}

// RejectedCount is the total number of rejected strings.
func (r *Result) RejectedCount() int {
	n := 0
	for _, lr := range r.lines {
		n += len(lr.Rejected)
	}
	return n
}

// Letters returns, for every position of line, the letters its accepted
// candidates hold there.
func (r *Result) Letters(line Line) []primitives.CharSet {
	lr, ok := r.Line(line)
	if !ok {
		return nil
	}
	return positionLetters(lr)
}

func positionLetters(lr LineResult) []primitives.CharSet {
	pl := primitives.MakePossibleLines(len(lr.Cells), lr.Candidates)
	out := make([]primitives.CharSet, len(lr.Cells))
	for k := range out {
		pl.CharsAt(&out[k], k)
	}
	return out
}

// CellLetters returns, for every puzzle cell, the letters all lines
// crossing it agree on.
func (r *Result) CellLetters() map[hex.Hex]primitives.CharSet {
	cells := make(map[hex.Hex]primitives.CharSet)
	for _, lr := range r.lines {
		for k, letters := range positionLetters(lr) {
			cell := lr.Cells[k]
			current, ok := cells[cell]
			if !ok {
				current = *primitives.FullCharSet()
			}
			current.Intersect(&letters)
			cells[cell] = current
		}
	}
	return cells
}

// Solved reports whether every line has exactly one accepted string.
func (r *Result) Solved() bool {
	for _, lr := range r.lines {
		if len(lr.Candidates) != 1 {
			return false
		}
	}
	return len(r.lines) > 0
}

// Outcome summarizes the result as "solved", "ambiguous" or "unsolvable".
func (r *Result) Outcome() string {
	for _, lr := range r.lines {
		if len(lr.Candidates) == 0 {
			return "unsolvable"
		}
	}
	if r.Solved() {
		return "solved"
	}
	return "ambiguous"
}

// CrossCheck returns a copy of r in which every candidate agrees with the
// letters the other lines allow at each of its cells, repeated until
// nothing changes.
//
// The ring sweep only narrows earlier lines at cells it visits twice; a
// letter ruled out at an inner ring is not removed from lines whose prefixes
// were fixed at an outer ring. CrossCheck closes that gap.
func (r *Result) CrossCheck() *Result {
	out := &Result{
		radius: r.radius,
		lines:  make([]LineResult, len(r.lines)),
		index:  r.index,
	}
	for i, lr := range r.lines {
		lr.Candidates = slices.Clone(lr.Candidates)
		lr.Rejected = slices.Clone(lr.Rejected)
		out.lines[i] = lr
	}

	for changed := true; changed; {
		changed = false
		cells := out.CellLetters()
		for i := range out.lines {
			lr := &out.lines[i]
			pl := primitives.MakePossibleLines(len(lr.Cells), lr.Candidates)
			for k, cell := range lr.Cells {
				letters := cells[cell]
				pl = pl.FilterAny(&letters, k)
			}
			kept := slices.Collect(pl.Iterate())
			if len(kept) != len(lr.Candidates) {
				lr.Candidates = append([]string{}, kept...)
				changed = true
			}
		}
	}
	return out
}

// Repr renders the hexagon row by row. A cell shows its letter when the
// crossing lines agree on exactly one, '?' when several remain, '#' when
// none do and '.' when no line crosses it.
func (r *Result) Repr() string {
	cells := r.CellLetters()
	var rows []string
	for row := -r.radius; row <= r.radius; row++ {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", abs(row)))
		for q := max(-r.radius, -row-r.radius); q <= min(r.radius, -row+r.radius); q++ {
			if b.Len() > abs(row) {
				b.WriteByte(' ')
			}
			letters, ok := cells[hex.New(q, row)]
			switch {
			case !ok:
				b.WriteByte('.')
			case letters.IsEmpty():
				b.WriteByte('#')
			case letters.Count() == 1:
				for ch := range letters.Letters() {
					b.WriteRune(ch)
				}
			default:
				b.WriteByte('?')
			}
		}
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "\n")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
