package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeighbors(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want []Point
	}{
		{
			name: "middle",
			x:    1, y: 1,
			want: []Point{
				{0, 0}, {1, 0}, {2, 0},
				{0, 1}, {2, 1},
				{0, 2}, {1, 2}, {2, 2},
			},
		},
		{
			name: "top left corner",
			x:    0, y: 0,
			want: []Point{{1, 0}, {0, 1}, {1, 1}},
		},
		{
			name: "top right corner",
			x:    3, y: 0,
			want: []Point{{2, 0}, {2, 1}, {3, 1}},
		},
		{
			name: "bottom left corner",
			x:    0, y: 2,
			want: []Point{{0, 1}, {1, 1}, {1, 2}},
		},
		{
			name: "bottom right corner",
			x:    3, y: 2,
			want: []Point{{2, 1}, {3, 1}, {2, 2}},
		},
		{
			name: "top edge",
			x:    1, y: 0,
			want: []Point{{0, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}},
		},
		{
			name: "left edge",
			x:    0, y: 1,
			want: []Point{{0, 0}, {1, 0}, {1, 1}, {0, 2}, {1, 2}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Neighbors(test.x, test.y, 4, 3)
			assert.ElementsMatch(t, test.want, got)
		})
	}
}

func TestNeighborsSingleCellGrid(t *testing.T) {
	assert.Empty(t, Neighbors(0, 0, 1, 1))
}

func TestCellStateFlagLevels(t *testing.T) {
	assert.Equal(t, 0, Hidden.FlagLevel())
	assert.Equal(t, 1, Flag1.FlagLevel())
	assert.Equal(t, 2, Flag2.FlagLevel())
	assert.Equal(t, 3, Flag3.FlagLevel())
	assert.Equal(t, 0, CellState(3).FlagLevel())

	assert.True(t, Flag2.IsFlagged())
	assert.False(t, Hidden.IsFlagged())
	assert.False(t, MineHit.IsFlagged())
	assert.True(t, CellState(0).IsOpen())
	assert.True(t, CellState(8).IsOpen())
	assert.False(t, MineHit.IsOpen())
}
