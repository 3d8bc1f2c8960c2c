package hexword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/hexword/pkg/hex"
)

func taskLines(task Task) []Line {
	var lines []Line
	for _, lt := range task.Lines {
		lines = append(lines, lt.Line)
	}
	return lines
}

func TestBuildTask(t *testing.T) {
	cw := pinwheel(t, stockPinwheel)

	tests := []struct {
		name string
		ring int
		cell hex.Hex
		want []Line
	}{
		{"outer east cell", 1, hex.New(1, 0), []Line{spokeEast, stubEast}},
		{"outer west cell holds only the stub", 1, hex.New(-1, 0), []Line{stubWest}},
		{"unused outer cell", 1, hex.New(1, -1), nil},
		{"center", 0, hex.Origin, []Line{spokeEast, spokeNorth}},
		{"outside the hexagon", 0, hex.New(2, -1), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := cw.BuildTask(tt.ring, tt.cell)
			require.NoError(t, err)
			assert.Equal(t, tt.ring, task.Ring)
			assert.Equal(t, cw.Radius()-tt.ring, task.Position)
			assert.Equal(t, tt.cell, task.Cell)
			assert.Equal(t, tt.want, taskLines(task))
			assert.Nil(t, task.Settled)
		})
	}
}

func TestTaskAtOutwardPass(t *testing.T) {
	cw := pinwheel(t, stockPinwheel)

	task, err := cw.TaskAt(2, hex.New(-1, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, task.Ring)
	assert.Equal(t, []Line{spokeEast}, taskLines(task))
	assert.Nil(t, task.Settled, "nothing settled before the first visit")

	cw.settle(hex.New(-1, 0), 0, letters(t, "CD"))
	task, err = cw.TaskAt(2, hex.New(-1, 0))
	require.NoError(t, err)
	require.NotNil(t, task.Settled)
	assert.Equal(t, letters(t, "CD"), *task.Settled)
}

func TestSettleNarrowsEarlierLines(t *testing.T) {
	cw := pinwheel(t, stockPinwheel)
	west := hex.New(-1, 0)

	cw.UpdateCandidates(stubWest, []string{"C", "D"})
	cw.settle(west, 0, letters(t, "CD"))
	assert.Equal(t, []string{"C", "D"}, cw.CandidatesOf(stubWest), "a first visit narrows nothing")

	cw.UpdateCandidates(spokeEast, []string{"BAD", "CAD"})
	cw.settle(west, 2, letters(t, "D"))
	assert.Equal(t, []string{"D"}, cw.CandidatesOf(stubWest))
	assert.Equal(t, []string{"BAD", "CAD"}, cw.CandidatesOf(spokeEast), "lines filling the cell now are untouched")

	cw.settle(west, 2, letters(t, ""))
	assert.Equal(t, []string{}, cw.CandidatesOf(stubWest))

	cw.Reset()
	task, err := cw.TaskAt(2, west)
	require.NoError(t, err)
	assert.Nil(t, task.Settled, "Reset forgets settled cells")
}

func TestBuildTaskCarriesCandidates(t *testing.T) {
	cw := pinwheel(t, stockPinwheel)
	cw.UpdateCandidates(spokeEast, []string{"B", "C"})

	task, err := cw.BuildTask(0, hex.Origin)
	require.NoError(t, err)
	require.Len(t, task.Lines, 2)

	assert.Equal(t, []string{"B", "C"}, task.Lines[0].Candidates)
	assert.Equal(t, []string{""}, task.Lines[1].Candidates)
	assert.Equal(t, ".A.", task.Lines[0].Search.String())
	assert.Equal(t, 1, task.Position)

	// Mutating the task does not leak into the crossword.
	task.Lines[0].Candidates[0] = "Z"
	assert.Equal(t, []string{"B", "C"}, cw.CandidatesOf(spokeEast))
}

func TestBuildTaskMultiplicity(t *testing.T) {
	cw := pinwheel(t, stockPinwheel)
	cw.multiplicity = 3

	_, err := cw.BuildTask(0, hex.Origin)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, Multiplicity, cfgErr.Kind)
	assert.Equal(t, hex.Origin, cfgErr.Cell)
	assert.Equal(t, 0, cfgErr.Ring)
	assert.Equal(t, 2, cfgErr.Count)
	assert.Contains(t, err.Error(), "crossed by 2 lines, want 3")
}

func TestBuildTaskCountsLinesLeavingTheCenter(t *testing.T) {
	// Two spokes along the same axis cross the outer cells three times:
	// once for each spoke and once for the stub.
	cw := build(t, 1, 2,
		layoutLine{spokeEast, MustExpression(`...`)},
		layoutLine{Line{hex.New(-1, 0), hex.East}, MustExpression(`...`)},
		layoutLine{stubEast, MustExpression(`.`)},
		layoutLine{stubWest, MustExpression(`.`)},
	)

	_, err := cw.BuildTask(1, hex.New(-1, 0))
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, Multiplicity, cfgErr.Kind)
	assert.Equal(t, 3, cfgErr.Count)
	assert.Equal(t, 1, cfgErr.Ring)
}
