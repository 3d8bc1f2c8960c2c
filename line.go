package hexword

import (
	"fmt"

	"crosswarped.com/hexword/pkg/hex"
)

// Line is a directed ray of cells. Two lines are the same line when both
// start and direction are equal, so Line is used directly as a map key.
type Line struct {
	Start     hex.Hex       `json:"start"`
	Direction hex.Direction `json:"direction"`
}

// At returns the cell reached after stepping distance times from Start.
func (l Line) At(distance int) hex.Hex {
	return l.Start.Add(l.Direction.Vector().Scale(distance))
}

// Cells returns the cells of the line from Start until the next step would
// leave the hexagon of maxRadius. It is empty if Start itself is outside.
func (l Line) Cells(maxRadius int) []hex.Hex {
	var cells []hex.Hex
	for current := l.Start; current.Length() <= maxRadius; current = current.Neighbor(l.Direction) {
		cells = append(cells, current)
	}
	return cells
}

// Length is the number of cells the line spans in a hexagon of the given
// radius, which is the length of every string the line finally holds.
func (l Line) Length(radius int) int {
	return len(l.Cells(radius))
}

// ringAt is the ring the sweep is on when it fills position k of a line:
// rings radius down to 0 on the way in, then 1 up to radius on the way
// out for lines that run through the center.
func ringAt(radius, k int) int {
	if k <= radius {
		return radius - k
	}
	return k - radius
}

// checkPath verifies that position k of the line lies on ring
// ringAt(radius, k) for every cell the line spans.
func (l Line) checkPath(radius int) error {
	cells := l.Cells(radius)
	if len(cells) == 0 {
		return fmt.Errorf("start %v is outside the radius %d hexagon", l.Start, radius)
	}
	for k, cell := range cells {
		if got, want := cell.Length(), ringAt(radius, k); got != want {
			return fmt.Errorf("position %d at %v lies on ring %d, want ring %d", k, cell, got, want)
		}
	}
	return nil
}

func (l Line) String() string {
	return fmt.Sprintf("%v→%v", l.Start, l.Direction)
}
