package hexword

import (
	"errors"
	"fmt"

	"crosswarped.com/hexword/pkg/hex"
)

// ErrConfig matches every configuration error with errors.Is.
var ErrConfig = errors.New("hexword: invalid configuration")

// ConfigErrorKind classifies configuration errors.
type ConfigErrorKind int

const (
	// DuplicateLine: a line was registered twice.
	DuplicateLine ConfigErrorKind = iota
	// InvalidLine: a line does not start on the outer ring or does not cross
	// the center one ring per step.
	InvalidLine
	// Multiplicity: a cell is crossed by the wrong number of lines.
	Multiplicity
	// Pattern: a pattern failed to compile.
	Pattern
	// Empty: the crossword has no lines.
	Empty
	// Bounds: the radius or multiplicity is out of range.
	Bounds
)

func (k ConfigErrorKind) String() string {
	switch k {
	case DuplicateLine:
		return "duplicate line"
	case InvalidLine:
		return "invalid line"
	case Multiplicity:
		return "multiplicity"
	case Pattern:
		return "pattern"
	case Empty:
		return "empty"
	case Bounds:
		return "bounds"
	}
	return fmt.Sprintf("ConfigErrorKind(%d)", int(k))
}

// ConfigError is a setup-time problem with a crossword. Which of Line, Cell,
// Ring and Count are meaningful depends on Kind.
type ConfigError struct {
	Kind  ConfigErrorKind
	Line  Line
	Cell  hex.Hex
	Ring  int
	Count int
	Want  int
	Err   error
}

func (e *ConfigError) Error() string {
	var msg string
	switch e.Kind {
	case DuplicateLine:
		msg = fmt.Sprintf("line %v registered twice", e.Line)
	case InvalidLine:
		msg = fmt.Sprintf("line %v: %v", e.Line, e.Err)
	case Multiplicity:
		msg = fmt.Sprintf("cell %v at ring %d is crossed by %d lines, want %d", e.Cell, e.Ring, e.Count, e.Want)
	case Pattern:
		msg = fmt.Sprintf("line %v: %v", e.Line, e.Err)
	default:
		msg = fmt.Sprint(e.Err)
	}
	return "hexword: " + e.Kind.String() + ": " + msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is makes every ConfigError match ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
