package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(t *testing.T, difficulty Difficulty) *Session {
	t.Helper()
	s, err := NewSession(
		difficulty,
		Settings{FirstSuccess: false, FlagLevels: 2},
		rand.New(rand.NewPCG(1, 2)),
	)
	require.NoError(t, err)
	return s
}

func TestDifficultyPresets(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		want       GameParams
	}{
		{Beginner, GameParams{Width: 8, Height: 8, MineCount: 10}},
		{Intermediate, GameParams{Width: 16, Height: 16, MineCount: 40}},
		{Expert, GameParams{Width: 30, Height: 16, MineCount: 99}},
		{Master, GameParams{Width: 30, Height: 30, MineCount: 200}},
	}
	for _, test := range tests {
		t.Run(string(test.difficulty), func(t *testing.T) {
			params, ok := test.difficulty.Params()
			require.True(t, ok)
			assert.Equal(t, test.want, params)
		})
	}

	_, ok := Custom.Params()
	assert.False(t, ok, "custom has no preset")
}

func TestParseDifficulty(t *testing.T) {
	var configErr ConfigError

	d, err := ParseDifficulty("expert")
	require.NoError(t, err)
	assert.Equal(t, Expert, d)

	_, err = ParseDifficulty("nightmare")
	assert.ErrorAs(t, err, &configErr)
}

func TestSessionRejectsOutOfBounds(t *testing.T) {
	s := testSession(t, Beginner)

	var oob OutOfBoundsError
	for _, p := range []Point{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}} {
		_, err := s.Click(p.X, p.Y)
		require.ErrorAs(t, err, &oob, "click %s", p)
		_, err = s.Chord(p.X, p.Y)
		require.ErrorAs(t, err, &oob, "chord %s", p)
		_, err = s.ToggleFlag(p.X, p.Y)
		require.ErrorAs(t, err, &oob, "flag %s", p)
	}
	assert.Equal(t, StatusReady, s.Status(), "rejected actions must not start the game")
	assert.Equal(t, 0, s.MoveCount())
}

func TestSessionChangeDifficulty(t *testing.T) {
	s := testSession(t, Beginner)

	require.NoError(t, s.ChangeDifficulty("expert"))
	assert.Equal(t, Expert, s.Difficulty)
	assert.Equal(t, GameParams{Width: 30, Height: 16, MineCount: 99}, s.Params())
	assert.Equal(t, StatusReady, s.Status())

	var configErr ConfigError
	err := s.ChangeDifficulty("nightmare")
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, Expert, s.Difficulty, "failed change must leave difficulty alone")
}

func TestSessionCustomParams(t *testing.T) {
	s := testSession(t, Beginner)

	require.NoError(t, s.SetCustomParams(GameParams{Width: 5, Height: 4, MineCount: 7}))
	assert.Equal(t, Custom, s.Difficulty)
	assert.Equal(t, GameParams{Width: 5, Height: 4, MineCount: 7}, s.Params())

	var configErr ConfigError
	err := s.SetCustomParams(GameParams{Width: 5, Height: 4, MineCount: 20})
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, GameParams{Width: 5, Height: 4, MineCount: 7}, s.Params())
}

func TestSessionPrepareNewGameResets(t *testing.T) {
	s := testSession(t, Beginner)

	// Find a safe cell so the game is guaranteed to go active.
	var safe Point
	for y := range 8 {
		for x := range 8 {
			if !s.Game.Field.MineAt(x, y) {
				safe = Point{x, y}
			}
		}
	}
	_, err := s.Click(safe.X, safe.Y)
	require.NoError(t, err)
	require.NotEqual(t, StatusReady, s.Status())

	prev := s.Game
	require.NoError(t, s.PrepareNewGame())
	assert.NotSame(t, prev, s.Game, "a new round must get a fresh game")
	assert.Equal(t, StatusReady, s.Status())
	assert.Equal(t, 0, s.MoveCount())
	assert.Zero(t, s.Elapsed())
	for _, c := range s.View() {
		assert.Equal(t, Hidden, c)
	}
}

func TestSessionRemainingMinesGoesNegative(t *testing.T) {
	s := testSession(t, Beginner) // 10 mines
	for i := range 11 {
		_, err := s.ToggleFlag(i%8, i/8)
		require.NoError(t, err)
	}
	assert.Equal(t, -1, s.RemainingMines())
}

func TestSessionCellAccessor(t *testing.T) {
	s := testSession(t, Beginner)

	c, err := s.Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Hidden, c)

	var oob OutOfBoundsError
	_, err = s.Cell(8, 8)
	assert.ErrorAs(t, err, &oob)
}

func TestSessionGobRoundTrip(t *testing.T) {
	s := testSession(t, Intermediate)
	_, err := s.ToggleFlag(3, 3)
	require.NoError(t, err)

	b, err := s.Bytes()
	require.NoError(t, err)
	decoded, err := ParseSessionFromBytes(b)
	require.NoError(t, err)

	assert.Equal(t, s.Difficulty, decoded.Difficulty)
	assert.Equal(t, s.Settings, decoded.Settings)
	assert.Equal(t, s.Game.Board.Cells, decoded.Game.Board.Cells)
	assert.Equal(t, s.Game.FlagCount, decoded.Game.FlagCount)

	// A decoded session must stay playable: the rand seam reseeds lazily.
	require.NoError(t, decoded.PrepareNewGame())
	assert.Equal(t, StatusReady, decoded.Status())
}
