package puzzle

import (
	"fmt"
	"maps"
	"slices"
)

// builtins are small layouts that ship with the program.
var builtins = map[string]File{
	// Two spokes across a radius 1 hexagon through the center. Every outer
	// cell a spoke touches carries a one-letter stub.
	"pinwheel": {
		Radius:       1,
		Multiplicity: 2,
		Lines:        pinwheelLines(`.A.`, `(BC|CA)[DE]`),
	},

	// The pinwheel with spokes that cannot agree on the center.
	"blocked": {
		Radius:       1,
		Multiplicity: 2,
		Lines:        pinwheelLines(`.A.`, `.B.`),
	},

	// Three spokes through the center, two stubs on each outer cell.
	"triad": {
		Radius:       1,
		Multiplicity: 3,
		Lines: []LineSpec{
			{Q: 1, R: 0, Direction: "west", Pattern: `^(AX|BY)Q$`},
			{Q: 1, R: -1, Direction: "southwest", Predicate: "two_same_chars"},
			{Q: 0, R: -1, Direction: "southeast", Pattern: `^(QX|RZ)D$`},
			{Q: 1, R: 0, Direction: "northeast", Pattern: `^[A-C]$`},
			{Q: 1, R: 0, Direction: "southeast", Pattern: `^.$`},
			{Q: 1, R: -1, Direction: "east", Pattern: `^[XY]$`},
			{Q: 1, R: -1, Direction: "northwest", Pattern: `^[X-Z]$`},
			{Q: 0, R: -1, Direction: "northeast", Pattern: `^[P-R]$`},
			{Q: 0, R: -1, Direction: "west", Pattern: `^[QR]$`},
			{Q: -1, R: 0, Direction: "southwest", Pattern: `^[QR]$`},
			{Q: -1, R: 0, Direction: "northwest", Pattern: `^.$`},
			{Q: -1, R: 1, Direction: "west", Pattern: `^Z$`},
			{Q: -1, R: 1, Direction: "southeast", Pattern: `^[X-Z]$`},
			{Q: 0, R: 1, Direction: "east", Pattern: `^[D-F]$`},
			{Q: 0, R: 1, Direction: "southwest", Pattern: `^.$`},
		},
	},

	// A single spoke across a radius 2 hexagon.
	"spokes": {
		Radius:       2,
		Multiplicity: 1,
		Lines: []LineSpec{
			{Q: 2, R: 0, Direction: "west", Pattern: `^(HEXES|HATES|H.GES)$`},
		},
	},
}

func pinwheelLines(east, north string) []LineSpec {
	return []LineSpec{
		{Q: 1, R: 0, Direction: "west", Pattern: east},
		{Q: 1, R: 0, Direction: "northeast", Pattern: `[BC]`},
		{Q: 0, R: -1, Direction: "southeast", Pattern: north},
		{Q: 0, R: -1, Direction: "northwest", Pattern: `[C-Z]`},
		{Q: -1, R: 0, Direction: "southwest", Pattern: `[CD]`},
		{Q: 0, R: 1, Direction: "southeast", Pattern: `D`},
	}
}

// Builtin returns a copy of the named built-in puzzle.
func Builtin(name string) (*File, error) {
	f, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown builtin %q", ErrInvalid, name)
	}
	f.Name = name
	f.Lines = slices.Clone(f.Lines)
	return &f, nil
}

// BuiltinNames lists the built-in puzzles in sorted order.
func BuiltinNames() []string {
	return slices.Sorted(maps.Keys(builtins))
}
