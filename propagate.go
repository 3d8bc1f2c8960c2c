package hexword

import (
	"fmt"

	"crosswarped.com/hexword/pkg/hex"
	"crosswarped.com/hexword/pkg/primitives"
)

// Propagation is the outcome of one Task.
type Propagation struct {
	Ring     int
	Position int
	Cell     hex.Hex

	// Letters is the intersection of every line's accepted letters: the
	// letters the cell may still hold.
	Letters primitives.CharSet

	// Accepted holds, per line, the letters that kept at least one of its
	// prefixes alive before intersecting.
	Accepted map[Line]primitives.CharSet

	// Candidates holds the new prefix set of every line in the task.
	Candidates map[Line][]string
}

// buckets holds a line's surviving extensions grouped by the letter added.
type buckets [primitives.AlphabetSize][]string

// Propagate extends every line of task by one letter.
//
// Each prefix of each line is tried with every letter of the alphabet; the
// letters that keep a line alive are intersected across the task, because
// all lines share the physical cell. A line's new prefixes are its
// extensions by the intersected letters, in alphabet order. When the cell
// was settled by an earlier visit the intersection also keeps only the
// letters settled there. An empty intersection empties every line of the
// task and is not an error.
func Propagate(task Task) Propagation {
	out := Propagation{
		Ring:       task.Ring,
		Position:   task.Position,
		Cell:       task.Cell,
		Accepted:   make(map[Line]primitives.CharSet, len(task.Lines)),
		Candidates: make(map[Line][]string, len(task.Lines)),
	}

	letters := *primitives.FullCharSet()
	if task.Settled != nil {
		letters.Intersect(task.Settled)
	}
	grouped := make([]buckets, len(task.Lines))
	for i, lt := range task.Lines {
		accepted := extend(lt, &grouped[i])
		out.Accepted[lt.Line] = accepted
		letters.Intersect(&accepted)
	}
	out.Letters = letters

	for i, lt := range task.Lines {
		next := []string{}
		for r := range letters.Letters() {
			next = append(next, grouped[i][r-primitives.MinLetter]...)
		}
		out.Candidates[lt.Line] = next
	}
	return out
}

// extend tries every one-letter extension of every prefix of lt, filling
// into with the survivors and returning the letters that had any.
func extend(lt LineTask, into *buckets) primitives.CharSet {
	var accepted primitives.CharSet

	switch s := lt.Search.(type) {
	case *Expression:
		// Advance once per prefix, then step once per letter.
		for _, prefix := range lt.Candidates {
			state := s.matcher.Run(prefix)
			if s.matcher.IsDead(state) {
				continue
			}
			for i, r := range primitives.Alphabet {
				if s.matcher.IsDead(s.matcher.Step(state, r)) {
					continue
				}
				accepted.Add(r)
				into[i] = append(into[i], prefix+string(r))
			}
		}
	case *Function:
		for _, prefix := range lt.Candidates {
			for i, r := range primitives.Alphabet {
				candidate := prefix + string(r)
				if !s.f(candidate) {
					continue
				}
				accepted.Add(r)
				into[i] = append(into[i], candidate)
			}
		}
	default:
		panic(fmt.Sprintf("hexword: unknown search type %T", lt.Search))
	}

	return accepted
}
