package hexword

import (
	"testing"

	"github.com/stretchr/testify/require"

	"crosswarped.com/hexword/pkg/hex"
)

// The pinwheel is a radius 1 layout crossed by two lines per cell: two
// spokes run across the hexagon through the center and every cell a spoke
// touches on the outer ring carries a one-cell stub.
var (
	spokeEast  = Line{Start: hex.New(1, 0), Direction: hex.West}
	spokeNorth = Line{Start: hex.New(0, -1), Direction: hex.SouthEast}
	stubEast   = Line{Start: hex.New(1, 0), Direction: hex.NorthEast}
	stubWest   = Line{Start: hex.New(-1, 0), Direction: hex.SouthWest}
	stubNorth  = Line{Start: hex.New(0, -1), Direction: hex.NorthWest}
	stubSouth  = Line{Start: hex.New(0, 1), Direction: hex.SouthEast}
)

// pinwheelPatterns holds one pattern per pinwheel line.
type pinwheelPatterns struct {
	east, north                string
	stubE, stubW, stubN, stubS string
}

// stockPinwheel leaves the spoke letters open at the east cell and the
// west cell.
var stockPinwheel = pinwheelPatterns{
	east:  `.A.`,
	north: `(BC|CA)[DE]`,
	stubE: `[BC]`,
	stubW: `[CD]`,
	stubN: `[C-Z]`,
	stubS: `D`,
}

type layoutLine struct {
	line   Line
	search Search
}

func pinwheel(t testing.TB, p pinwheelPatterns) *Crossword {
	t.Helper()
	return build(t, 1, 2,
		layoutLine{spokeEast, MustExpression(p.east)},
		layoutLine{stubEast, MustExpression(p.stubE)},
		layoutLine{spokeNorth, MustExpression(p.north)},
		layoutLine{stubNorth, MustExpression(p.stubN)},
		layoutLine{stubWest, MustExpression(p.stubW)},
		layoutLine{stubSouth, MustExpression(p.stubS)},
	)
}

func build(t testing.TB, radius, multiplicity int, lines ...layoutLine) *Crossword {
	t.Helper()
	cw := New(radius, WithMultiplicity(multiplicity))
	for _, l := range lines {
		require.NoError(t, cw.Add(l.line, l.search))
	}
	return cw
}

func twoSameChars(s string) bool {
	return len(s) < 2 || s[0] == s[1]
}

// The triad is a radius 1 layout with three lines per cell: three spokes
// across the hexagon and two one-cell stubs on every outer cell.
var (
	triadEast      = Line{hex.New(1, 0), hex.West}
	triadNorthEast = Line{hex.New(1, -1), hex.SouthWest}
	triadNorth     = Line{hex.New(0, -1), hex.SouthEast}
)

func triad(t testing.TB) *Crossword {
	t.Helper()
	return build(t, 1, 3,
		layoutLine{triadEast, MustExpression(`^(AX|BY)Q$`)},
		layoutLine{triadNorthEast, NewFunction("two_same_chars", twoSameChars)},
		layoutLine{triadNorth, MustExpression(`^(QX|RZ)D$`)},
		layoutLine{Line{hex.New(1, 0), hex.NorthEast}, MustExpression(`^[A-C]$`)},
		layoutLine{Line{hex.New(1, 0), hex.SouthEast}, MustExpression(`^.$`)},
		layoutLine{Line{hex.New(1, -1), hex.East}, MustExpression(`^[XY]$`)},
		layoutLine{Line{hex.New(1, -1), hex.NorthWest}, MustExpression(`^[X-Z]$`)},
		layoutLine{Line{hex.New(0, -1), hex.NorthEast}, MustExpression(`^[P-R]$`)},
		layoutLine{Line{hex.New(0, -1), hex.West}, MustExpression(`^[QR]$`)},
		layoutLine{Line{hex.New(-1, 0), hex.SouthWest}, MustExpression(`^[QR]$`)},
		layoutLine{Line{hex.New(-1, 0), hex.NorthWest}, MustExpression(`^.$`)},
		layoutLine{Line{hex.New(-1, 1), hex.West}, MustExpression(`^Z$`)},
		layoutLine{Line{hex.New(-1, 1), hex.SouthEast}, MustExpression(`^[X-Z]$`)},
		layoutLine{Line{hex.New(0, 1), hex.East}, MustExpression(`^[D-F]$`)},
		layoutLine{Line{hex.New(0, 1), hex.SouthWest}, MustExpression(`^.$`)},
	)
}
