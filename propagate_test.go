package hexword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/hexword/pkg/hex"
	"crosswarped.com/hexword/pkg/primitives"
)

func letters(t testing.TB, s string) primitives.CharSet {
	t.Helper()
	cs, err := primitives.CharSetOf(s)
	require.NoError(t, err)
	return *cs
}

func TestPropagateIntersectsLetters(t *testing.T) {
	cw := pinwheel(t, stockPinwheel)
	task, err := cw.BuildTask(1, hex.New(1, 0))
	require.NoError(t, err)

	p := Propagate(task)

	assert.Equal(t, 1, p.Ring)
	assert.Equal(t, hex.New(1, 0), p.Cell)
	assert.Equal(t, 0, p.Position)
	assert.True(t, p.Accepted[spokeEast].IsFull(), "any first letter keeps .A. alive")
	assert.Equal(t, letters(t, "BC"), p.Accepted[stubEast])
	assert.Equal(t, letters(t, "BC"), p.Letters)
	assert.Equal(t, []string{"B", "C"}, p.Candidates[spokeEast])
	assert.Equal(t, []string{"B", "C"}, p.Candidates[stubEast])
}

func TestPropagateExtendsEveryPrefix(t *testing.T) {
	task := Task{
		Ring: 0,
		Cell: hex.Origin,
		Lines: []LineTask{
			{Line: spokeEast, Search: MustExpression(`.A`), Candidates: []string{"B", "C"}},
			{Line: spokeNorth, Search: MustExpression(`BC|CA`), Candidates: []string{"B", "C"}},
		},
	}

	p := Propagate(task)

	assert.Equal(t, letters(t, "A"), p.Accepted[spokeEast])
	assert.Equal(t, letters(t, "AC"), p.Accepted[spokeNorth])
	assert.Equal(t, letters(t, "A"), p.Letters)
	assert.Equal(t, []string{"BA", "CA"}, p.Candidates[spokeEast])
	// BC was accepted by its own line but C is not shared by the cell.
	assert.Equal(t, []string{"CA"}, p.Candidates[spokeNorth])
}

func TestPropagateKeepsSettledLetters(t *testing.T) {
	settled := letters(t, "CD")
	task := Task{
		Ring:     1,
		Position: 2,
		Cell:     hex.New(-1, 0),
		Lines: []LineTask{
			{Line: spokeEast, Search: MustExpression(`.A[D-F]`), Candidates: []string{"BA", "CA"}},
		},
		Settled: &settled,
	}

	p := Propagate(task)

	assert.Equal(t, letters(t, "DEF"), p.Accepted[spokeEast])
	assert.Equal(t, letters(t, "D"), p.Letters)
	assert.Equal(t, []string{"BAD", "CAD"}, p.Candidates[spokeEast])
	assert.Equal(t, letters(t, "CD"), settled, "the task's settled set is not modified")
}

func TestPropagateOrdersByLetterThenPrefix(t *testing.T) {
	task := Task{
		Lines: []LineTask{
			{Line: spokeEast, Search: MustExpression(`[QR][ZA]`), Candidates: []string{"R", "Q"}},
		},
	}

	p := Propagate(task)
	assert.Equal(t, []string{"RA", "QA", "RZ", "QZ"}, p.Candidates[spokeEast])
}

func TestPropagateEmptyIntersection(t *testing.T) {
	task := Task{
		Cell: hex.Origin,
		Lines: []LineTask{
			{Line: spokeEast, Search: MustExpression(`.A`), Candidates: []string{"B"}},
			{Line: spokeNorth, Search: MustExpression(`.B`), Candidates: []string{"C"}},
		},
	}

	p := Propagate(task)

	assert.True(t, p.Letters.IsEmpty())
	assert.Equal(t, []string{}, p.Candidates[spokeEast])
	assert.Equal(t, []string{}, p.Candidates[spokeNorth])
}

func TestPropagateEmptyLineStaysEmpty(t *testing.T) {
	task := Task{
		Lines: []LineTask{
			{Line: spokeEast, Search: MustExpression(`.*`), Candidates: []string{}},
			{Line: spokeNorth, Search: MustExpression(`.*`), Candidates: []string{"A"}},
		},
	}

	p := Propagate(task)

	assert.True(t, p.Accepted[spokeEast].IsEmpty())
	assert.Empty(t, p.Candidates[spokeEast])
	assert.Empty(t, p.Candidates[spokeNorth], "an empty line contributes no letters to the cell")
}

func TestPropagateFunction(t *testing.T) {
	task := Task{
		Lines: []LineTask{
			{Line: spokeEast, Search: NewFunction("two_same_chars", twoSameChars), Candidates: []string{"X", "Y"}},
			{Line: spokeNorth, Search: MustExpression(`.[XYZ]`), Candidates: []string{"A"}},
		},
	}

	p := Propagate(task)

	assert.Equal(t, letters(t, "XY"), p.Accepted[spokeEast])
	assert.Equal(t, letters(t, "XY"), p.Letters)
	assert.Equal(t, []string{"XX", "YY"}, p.Candidates[spokeEast])
	assert.Equal(t, []string{"AX", "AY"}, p.Candidates[spokeNorth])
}

func TestPropagateMatchesPartialMatchDefinition(t *testing.T) {
	// The stepping fast path must agree with re-running PartiallyMatches.
	search := MustExpression(`^(A|DC)*B?$`)
	prefixes := []string{"", "A", "D", "DC", "AB", "DD"}
	task := Task{Lines: []LineTask{{Line: spokeEast, Search: search, Candidates: prefixes}}}

	p := Propagate(task)

	var want []string
	for _, r := range primitives.Alphabet {
		for _, prefix := range prefixes {
			if search.PartiallyMatches(prefix + string(r)) {
				want = append(want, prefix+string(r))
			}
		}
	}
	assert.Equal(t, want, p.Candidates[spokeEast])
}
