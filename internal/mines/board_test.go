package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealFloodFill(t *testing.T) {
	// Single mine in a corner: opening the opposite corner must cascade
	// through every safe cell in one flood-fill.
	field, err := NewMinefield(3, 3, []Point{{2, 2}})
	require.NoError(t, err)
	board := NewBoard(3, 3)

	opened := board.Reveal(field, 0, 0)
	assert.Len(t, opened, 8)

	assert.Equal(t, GridView{
		0, 0, 0,
		0, 1, 1,
		0, 1, Hidden,
	}, board.Cells)
}

func TestRevealIsIdempotent(t *testing.T) {
	field, err := NewMinefield(3, 3, []Point{{2, 2}})
	require.NoError(t, err)
	board := NewBoard(3, 3)

	board.Reveal(field, 0, 0)
	before := make(GridView, len(board.Cells))
	copy(before, board.Cells)

	assert.Empty(t, board.Reveal(field, 0, 0))
	assert.Equal(t, before, board.Cells)
}

func TestRevealStopsAtNumbers(t *testing.T) {
	field, err := NewMinefield(5, 1, []Point{{4, 0}})
	require.NoError(t, err)
	board := NewBoard(5, 1)

	opened := board.Reveal(field, 0, 0)
	// 0 0 0 1 | mine stays hidden
	assert.ElementsMatch(t, []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, opened)
	assert.True(t, board.At(4, 0).IsHidden())
}

func TestRevealSkipsFlaggedCells(t *testing.T) {
	field, err := NewMinefield(3, 3, []Point{{2, 2}})
	require.NoError(t, err)
	board := NewBoard(3, 3)

	_, _, err = board.CycleFlag(1, 1, 2)
	require.NoError(t, err)

	opened := board.Reveal(field, 0, 0)
	assert.Len(t, opened, 7)
	assert.True(t, board.At(1, 1).IsFlagged(), "flood-fill must not open a flag")
}

func TestCycleFlagTwoLevels(t *testing.T) {
	board := NewBoard(2, 2)

	level, delta, err := board.CycleFlag(0, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, level)
	assert.Equal(t, +1, delta)

	level, delta, err = board.CycleFlag(0, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, level)
	assert.Equal(t, 0, delta)

	level, delta, err = board.CycleFlag(0, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, level)
	assert.Equal(t, -1, delta)
	assert.True(t, board.At(0, 0).IsHidden())
}

func TestCycleFlagThreeLevels(t *testing.T) {
	board := NewBoard(2, 2)

	var levels []int
	for range 4 {
		level, _, err := board.CycleFlag(1, 1, 3)
		require.NoError(t, err)
		levels = append(levels, level)
	}
	assert.Equal(t, []int{1, 2, 3, 0}, levels)
}

func TestCycleFlagOnOpenCell(t *testing.T) {
	field, err := NewMinefield(3, 3, []Point{{2, 2}})
	require.NoError(t, err)
	board := NewBoard(3, 3)
	board.Reveal(field, 1, 1)

	var invalid InvalidActionError
	_, _, err = board.CycleFlag(1, 1, 2)
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, CellState(1), board.At(1, 1))
}
