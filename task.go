package hexword

import (
	"crosswarped.com/hexword/pkg/hex"
	"crosswarped.com/hexword/pkg/primitives"
)

// LineTask is one line's share of a Task: its constraint and the candidate
// prefixes it had before the ring started.
type LineTask struct {
	Line       Line
	Search     Search
	Candidates []string
}

// Task bundles the lines crossing one cell at one ring. Every line in the
// task must place the same letter in Cell.
type Task struct {
	Ring int
	// Position is the index along each line that the task fills.
	Position int
	Cell     hex.Hex
	Lines    []LineTask

	// Settled holds the letters an earlier visit to Cell left, or nil on
	// the first visit.
	Settled *primitives.CharSet
}

// BuildTask collects the lines whose position radius-ring is cell. This is
// the task of the inward pass.
//
// A cell no line crosses is not part of the puzzle and yields a task
// without lines. A cell crossed by any other number of lines than the
// multiplicity is a *ConfigError; every line spanning the cell counts,
// including those that reach it on the way out.
func (c *Crossword) BuildTask(ring int, cell hex.Hex) (Task, error) {
	return c.TaskAt(c.radius-ring, cell)
}

// TaskAt collects the lines whose position is cell. Positions past the
// radius belong to the outward pass.
func (c *Crossword) TaskAt(position int, cell hex.Hex) (Task, error) {
	task := Task{Ring: ringAt(c.radius, position), Position: position, Cell: cell}

	crossings := c.crossings[cell]
	if n := len(crossings); n != 0 && n != c.multiplicity {
		return task, &ConfigError{
			Kind:  Multiplicity,
			Cell:  cell,
			Ring:  cell.Length(),
			Count: n,
			Want:  c.multiplicity,
		}
	}

	for _, x := range crossings {
		if x.position != position {
			continue
		}
		task.Lines = append(task.Lines, LineTask{
			Line:       x.line,
			Search:     c.constraints[x.line],
			Candidates: c.CandidatesOf(x.line),
		})
	}
	if letters, ok := c.settled[cell]; ok {
		task.Settled = &letters
	}
	return task, nil
}
