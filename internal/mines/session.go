package mines

import (
	"bytes"
	"encoding/gob"
	"hash/maphash"
	"math/rand/v2"
	"time"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// Session is the engine surface a presentation layer talks to: the live
// [Game] plus the difficulty and settings that survive across rounds.
// Every coordinate-taking operation validates bounds itself before
// touching the game.
type Session struct {
	Difficulty   Difficulty
	CustomParams GameParams // board parameters used when Difficulty is Custom
	Settings     Settings
	Game         *Game

	rnd *rand.Rand
	now func() time.Time
}

// NewSession starts a session on the given difficulty and immediately
// prepares a fresh game. A nil r means an unpredictable seed.
func NewSession(
	difficulty Difficulty, settings Settings, r *rand.Rand,
) (*Session, error) {
	if _, err := ParseDifficulty(string(difficulty)); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		Difficulty:   difficulty,
		CustomParams: presets[Beginner],
		Settings:     settings,
		rnd:          r,
	}
	if err := s.PrepareNewGame(); err != nil {
		return nil, err
	}
	return s, nil
}

func ParseSessionFromBytes(buf []byte) (*Session, error) {
	var s Session
	if err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Session) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SetClock replaces the time source for this session and its games.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
	if s.Game != nil {
		s.Game.SetClock(now)
	}
}

func (s *Session) rand() *rand.Rand {
	if s.rnd == nil {
		s.rnd = newRand()
	}
	return s.rnd
}

// Params returns the board parameters of the active difficulty.
func (s *Session) Params() GameParams {
	if p, ok := s.Difficulty.Params(); ok {
		return p
	}
	return s.CustomParams
}

// PrepareNewGame discards the current game, board and minefield and
// returns the session to ready state with counters and timer reset.
func (s *Session) PrepareNewGame() error {
	game, err := NewGame(s.Params(), s.Settings, s.rand())
	if err != nil {
		return err
	}
	if s.now != nil {
		game.SetClock(s.now)
	}
	s.Game = game
	return nil
}

// ChangeDifficulty switches the stored difficulty and prepares a new
// game on it. Unknown identifiers fail with [ConfigError] and leave the
// session untouched.
func (s *Session) ChangeDifficulty(id string) error {
	difficulty, err := ParseDifficulty(id)
	if err != nil {
		return err
	}
	prev := s.Difficulty
	s.Difficulty = difficulty
	if err := s.PrepareNewGame(); err != nil {
		s.Difficulty = prev
		return err
	}
	return nil
}

// SetCustomParams installs custom board parameters, switches the session
// to the custom difficulty and prepares a new game.
func (s *Session) SetCustomParams(params GameParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	prev, prevParams := s.Difficulty, s.CustomParams
	s.Difficulty = Custom
	s.CustomParams = params
	if err := s.PrepareNewGame(); err != nil {
		s.Difficulty, s.CustomParams = prev, prevParams
		return err
	}
	return nil
}

func (s *Session) checkBounds(x, y int) error {
	if p := s.Params(); !p.Inside(x, y) {
		return OutOfBoundsError{X: x, Y: y, Width: p.Width, Height: p.Height}
	}
	return nil
}

func (s *Session) Click(x, y int) (*MoveResult, error) {
	if err := s.checkBounds(x, y); err != nil {
		return nil, err
	}
	return s.Game.Click(x, y)
}

func (s *Session) Chord(x, y int) (*MoveResult, error) {
	if err := s.checkBounds(x, y); err != nil {
		return nil, err
	}
	return s.Game.Chord(x, y)
}

func (s *Session) ToggleFlag(x, y int) (*FlagResult, error) {
	if err := s.checkBounds(x, y); err != nil {
		return nil, err
	}
	return s.Game.ToggleFlag(x, y)
}

func (s *Session) Status() Status {
	return s.Game.Status
}

// Cell returns the visible state of one cell.
func (s *Session) Cell(x, y int) (CellState, error) {
	if err := s.checkBounds(x, y); err != nil {
		return 0, err
	}
	return s.Game.Cell(x, y), nil
}

func (s *Session) View() GridView {
	return s.Game.View()
}

func (s *Session) RemainingMines() int {
	return s.Game.RemainingMines()
}

func (s *Session) Elapsed() time.Duration {
	return s.Game.Elapsed()
}

func (s *Session) MoveCount() int {
	return s.Game.MoveCount
}
