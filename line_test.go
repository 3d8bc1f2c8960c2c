package hexword

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crosswarped.com/hexword/pkg/hex"
)

func TestLineAt(t *testing.T) {
	l := Line{Start: hex.New(2, -1), Direction: hex.SouthWest}
	assert.Equal(t, hex.New(2, -1), l.At(0))
	assert.Equal(t, hex.New(1, 0), l.At(1))
	assert.Equal(t, hex.New(-1, 2), l.At(3))
}

func TestLineCells(t *testing.T) {
	tests := []struct {
		name   string
		line   Line
		radius int
		want   []hex.Hex
		length int
	}{
		{
			name:   "spoke through the center",
			line:   spokeEast,
			radius: 1,
			want:   []hex.Hex{hex.New(1, 0), hex.Origin, hex.New(-1, 0)},
			length: 3,
		},
		{
			name:   "stub leaves at once",
			line:   stubEast,
			radius: 1,
			want:   []hex.Hex{hex.New(1, 0)},
			length: 1,
		},
		{
			name:   "edge of radius 1",
			line:   Line{Start: hex.New(0, -1), Direction: hex.East},
			radius: 1,
			want:   []hex.Hex{hex.New(0, -1), hex.New(1, -1)},
			length: 2,
		},
		{
			name:   "diameter of radius 2",
			line:   Line{Start: hex.New(2, 0), Direction: hex.West},
			radius: 2,
			want:   []hex.Hex{hex.New(2, 0), hex.New(1, 0), hex.Origin, hex.New(-1, 0), hex.New(-2, 0)},
			length: 5,
		},
		{
			name:   "start outside",
			line:   Line{Start: hex.New(3, 0), Direction: hex.West},
			radius: 2,
			want:   nil,
			length: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.line.Cells(tt.radius))
			assert.Equal(t, tt.length, tt.line.Length(tt.radius))
		})
	}
}

func TestRingAt(t *testing.T) {
	var rings []int
	for k := range 5 {
		rings = append(rings, ringAt(2, k))
	}
	assert.Equal(t, []int{2, 1, 0, 1, 2}, rings)
}

func TestLineCheckPath(t *testing.T) {
	assert.NoError(t, spokeEast.checkPath(1), "through the center and out again")
	assert.NoError(t, stubWest.checkPath(1))
	assert.NoError(t, Line{Start: hex.New(2, -2), Direction: hex.SouthWest}.checkPath(2))

	// The second cell of an edge line stays on the outer ring.
	edge := Line{Start: hex.New(0, -1), Direction: hex.East}
	assert.ErrorContains(t, edge.checkPath(1), "position 1")

	// A chord of radius 2 passes beside the center instead of through it.
	chord := Line{Start: hex.New(2, -1), Direction: hex.West}
	assert.ErrorContains(t, chord.checkPath(2), "position 2 at (0,-1) lies on ring 1, want ring 0")

	inner := Line{Start: hex.Origin, Direction: hex.East}
	assert.ErrorContains(t, inner.checkPath(1), "ring 0, want ring 1")

	outside := Line{Start: hex.New(5, 0), Direction: hex.West}
	assert.ErrorContains(t, outside.checkPath(1), "outside")
}

func TestLineAsMapKey(t *testing.T) {
	m := map[Line]int{spokeEast: 1}
	m[Line{Start: hex.New(1, 0), Direction: hex.West}]++
	assert.Equal(t, 2, m[spokeEast])
	assert.Len(t, m, 1)
}
