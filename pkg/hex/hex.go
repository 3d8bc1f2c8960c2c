// Package hex implements axial coordinates on a hexagonal grid.
//
// Cells are addressed by two integers (Q, R); the implied third cube
// coordinate is -Q-R. Distances use the hex metric, so the cells at
// distance d from a center form a ring of 6*d cells (1 cell for d == 0).
package hex

import (
	"fmt"
	"strings"
)

// Hex is an axial coordinate identifying one cell.
type Hex struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

// Origin is the center of every grid in this module.
var Origin = Hex{}

// New returns the cell at (q, r).
func New(q, r int) Hex {
	return Hex{Q: q, R: r}
}

// S returns the implied third cube coordinate.
func (h Hex) S() int {
	return -h.Q - h.R
}

func (h Hex) Add(other Hex) Hex {
	return Hex{Q: h.Q + other.Q, R: h.R + other.R}
}

func (h Hex) Sub(other Hex) Hex {
	return Hex{Q: h.Q - other.Q, R: h.R - other.R}
}

func (h Hex) Scale(k int) Hex {
	return Hex{Q: h.Q * k, R: h.R * k}
}

// Neighbor returns the adjacent cell in the given direction.
func (h Hex) Neighbor(d Direction) Hex {
	return h.Add(d.Vector())
}

// Length is the distance from the origin.
func (h Hex) Length() int {
	return (abs(h.Q) + abs(h.R) + abs(h.S())) / 2
}

// Distance returns the number of steps between two cells.
func (h Hex) Distance(other Hex) int {
	return h.Sub(other).Length()
}

func (h Hex) String() string {
	return fmt.Sprintf("(%d,%d)", h.Q, h.R)
}

// Direction is one of the six axial directions.
type Direction int

const (
	East Direction = iota
	NorthEast
	NorthWest
	West
	SouthWest
	SouthEast
)

// Directions lists every direction in counter-clockwise order starting East.
var Directions = [6]Direction{East, NorthEast, NorthWest, West, SouthWest, SouthEast}

var directionVectors = [6]Hex{
	East:      {Q: 1, R: 0},
	NorthEast: {Q: 1, R: -1},
	NorthWest: {Q: 0, R: -1},
	West:      {Q: -1, R: 0},
	SouthWest: {Q: -1, R: 1},
	SouthEast: {Q: 0, R: 1},
}

var directionNames = [6]string{
	East:      "east",
	NorthEast: "northeast",
	NorthWest: "northwest",
	West:      "west",
	SouthWest: "southwest",
	SouthEast: "southeast",
}

// Valid reports whether d is one of the six directions.
func (d Direction) Valid() bool {
	return d >= East && d <= SouthEast
}

// Vector returns the unit step for d.
func (d Direction) Vector() Hex {
	return directionVectors[d]
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection parses a direction name such as "east" or "south-west".
// Case, dashes and underscores are ignored; the compass abbreviations
// "e", "ne", "nw", "w", "sw" and "se" are also accepted.
func ParseDirection(s string) (Direction, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	switch norm {
	case "e", "east":
		return East, nil
	case "ne", "northeast":
		return NorthEast, nil
	case "nw", "northwest":
		return NorthWest, nil
	case "w", "west":
		return West, nil
	case "sw", "southwest":
		return SouthWest, nil
	case "se", "southeast":
		return SouthEast, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Ring returns the cells at exactly radius steps from center.
//
// The walk starts at the cell radius steps to the SouthWest of center and
// proceeds counter-clockwise, so the order is stable across calls.
func Ring(center Hex, radius int) []Hex {
	if radius < 0 {
		return nil
	}
	if radius == 0 {
		return []Hex{center}
	}

	cells := make([]Hex, 0, 6*radius)
	current := center.Add(SouthWest.Vector().Scale(radius))
	for _, d := range Directions {
		for range radius {
			cells = append(cells, current)
			current = current.Neighbor(d)
		}
	}
	return cells
}

// Hexagon returns every cell within radius steps of center, ring by ring
// from the center outward.
func Hexagon(center Hex, radius int) []Hex {
	if radius < 0 {
		return nil
	}
	cells := make([]Hex, 0, 3*radius*(radius+1)+1)
	for r := 0; r <= radius; r++ {
		cells = append(cells, Ring(center, r)...)
	}
	return cells
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
