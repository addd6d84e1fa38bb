package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMinefieldProperties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params GameParams
	}{
		{name: "8x8(10)", params: GameParams{Width: 8, Height: 8, MineCount: 10}},
		{name: "16x16(40)", params: GameParams{Width: 16, Height: 16, MineCount: 40}},
		{name: "30x16(99)", params: GameParams{Width: 30, Height: 16, MineCount: 99}},
		{name: "30x30(200)", params: GameParams{Width: 30, Height: 30, MineCount: 200}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			params := test.params
			for seed := range uint64(20) {
				r := rand.New(rand.NewPCG(seed, seed+1))
				sx, sy := int(seed)%params.Width, int(seed)%params.Height
				excluded := append(
					Neighbors(sx, sy, params.Width, params.Height),
					Point{sx, sy},
				)

				field, err := GenerateMinefield(params, excluded, r)
				require.NoError(t, err)

				count := 0
				for _, mine := range field.Mines {
					if mine {
						count++
					}
				}
				assert.Equal(t, params.MineCount, count)
				assert.Len(t, field.Mines, params.Cells())
				for _, p := range excluded {
					assert.False(t, field.MineAt(p.X, p.Y),
						"mine in excluded cell %s (seed %d)", p, seed)
				}
			}
		})
	}
}

func TestGenerateMinefieldDeterministic(t *testing.T) {
	params := GameParams{Width: 16, Height: 16, MineCount: 40}
	a, err := GenerateMinefield(params, nil, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	b, err := GenerateMinefield(params, nil, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	assert.Equal(t, a.Mines, b.Mines)
	assert.Equal(t, a.Adjacent, b.Adjacent)
}

func TestGenerateMinefieldRejectsOverfilled(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	var configErr ConfigError

	// 9 mines on 9 cells can never leave an open cell.
	_, err := GenerateMinefield(GameParams{Width: 3, Height: 3, MineCount: 9}, nil, r)
	require.ErrorAs(t, err, &configErr)

	// 8 mines fit 9 cells, but not once a cell is excluded.
	params := GameParams{Width: 3, Height: 3, MineCount: 8}
	_, err = GenerateMinefield(params, nil, r)
	assert.NoError(t, err)
	_, err = GenerateMinefield(params, []Point{{1, 1}}, r)
	require.ErrorAs(t, err, &configErr)
}

func TestGenerateMinefieldRejectsBadParams(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	var configErr ConfigError
	for _, params := range []GameParams{
		{Width: 0, Height: 8, MineCount: 1},
		{Width: 8, Height: -1, MineCount: 1},
		{Width: 8, Height: 8, MineCount: 0},
		{Width: 8, Height: 8, MineCount: 64},
	} {
		_, err := GenerateMinefield(params, nil, r)
		assert.ErrorAs(t, err, &configErr, "params %s", params)
	}
}

func TestNewMinefieldAdjacency(t *testing.T) {
	field, err := NewMinefield(3, 3, []Point{{2, 2}})
	require.NoError(t, err)

	wantAdjacent := []int8{
		0, 0, 0,
		0, 1, 1,
		0, 1, 0, // value under the mine itself is not meaningful
	}
	assert.Equal(t, wantAdjacent[:8], field.Adjacent[:8])
	assert.True(t, field.MineAt(2, 2))
	assert.Equal(t, 1, field.AdjacentMines(1, 1))
}

func TestNewMinefieldRejectsDuplicatesAndOutOfBounds(t *testing.T) {
	var configErr ConfigError
	_, err := NewMinefield(3, 3, []Point{{0, 0}, {0, 0}})
	assert.ErrorAs(t, err, &configErr)
	_, err = NewMinefield(3, 3, []Point{{3, 0}})
	assert.ErrorAs(t, err, &configErr)
}
