package mines

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"
	"time"
)

type Status int8

const (
	StatusReady Status = iota
	StatusActive
	StatusWon
	StatusLost
)

func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusActive:
		return "active"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "invalid"
	}
}

// Game runs one round of minesweeper as a ready -> active -> won|lost
// state machine. It owns its board and minefield exclusively; a new
// round means a new Game.
//
// With Settings.FirstSuccess the minefield does not exist until the
// first click: Field stays nil in ready state and every access to it
// goes through an action method that generates it first.
type Game struct {
	Params    GameParams
	Settings  Settings
	Status    Status
	Board     *Board
	Field     *Minefield // nil until first click when FirstSuccess is set
	Hit       *Point     // mine the player set off, only in lost state
	FlagCount int
	MoveCount int
	StartedAt time.Time
	EndedAt   time.Time

	rnd *rand.Rand
	now func() time.Time
}

// MoveResult is what a click or chord changed, for the caller to render.
type MoveResult struct {
	Revealed []Point  `json:"revealed,omitempty"`
	Status   Status   `json:"-"`
	Outcome  GridView `json:"outcome,omitempty"` // set on terminal transition
}

// FlagResult reports a flag-level change on a single cell.
type FlagResult struct {
	Cell           Point `json:"cell"`
	Level          int   `json:"level"`
	RemainingMines int   `json:"remaining_mines"`
}

// NewGame starts a round in ready state. Unless settings defer
// generation to the first click, the minefield is generated immediately
// from r with no excluded cells.
func NewGame(params GameParams, settings Settings, r *rand.Rand) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if settings.FirstSuccess && params.MineCount >= params.Cells()-9 {
		return nil, ConfigError{fmt.Sprintf(
			"%d mines leave no room for a safe first click on a %dx%d board",
			params.MineCount, params.Width, params.Height,
		)}
	}
	g := &Game{
		Params:   params,
		Settings: settings,
		Status:   StatusReady,
		Board:    NewBoard(params.Width, params.Height),
		rnd:      r,
	}
	if !settings.FirstSuccess {
		field, err := GenerateMinefield(params, nil, g.rand())
		if err != nil {
			return nil, err
		}
		g.Field = field
	}
	return g, nil
}

func ParseGameFromBytes(buf []byte) (*Game, error) {
	var g Game
	if err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (g *Game) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SetClock replaces the time source used for the elapsed timer.
func (g *Game) SetClock(now func() time.Time) {
	g.now = now
}

func (g *Game) timeNow() time.Time {
	if g.now == nil {
		return time.Now().UTC()
	}
	return g.now()
}

func (g *Game) rand() *rand.Rand {
	if g.rnd == nil {
		g.rnd = newRand()
	}
	return g.rnd
}

// Click opens a cell. The first accepted click moves the game to active
// state and starts the timer; with FirstSuccess it also generates the
// minefield so that the clicked cell and its whole neighborhood are
// mine-free. Opening a mine loses the game on the spot.
func (g *Game) Click(x, y int) (*MoveResult, error) {
	if g.Status.Terminal() {
		return nil, InvalidActionError{"click", "game is over"}
	}
	switch s := g.Board.At(x, y); {
	case s.IsOpen():
		return nil, InvalidActionError{"click", "cell is already open"}
	case s.IsFlagged():
		return nil, InvalidActionError{"click", "cell is flagged"}
	}

	if g.Field == nil {
		excluded := append(
			Neighbors(x, y, g.Params.Width, g.Params.Height), Point{x, y},
		)
		field, err := GenerateMinefield(g.Params, excluded, g.rand())
		if err != nil {
			return nil, err
		}
		g.Field = field
	}
	if g.Status == StatusReady {
		g.Status = StatusActive
		g.StartedAt = g.timeNow()
	}
	g.MoveCount++

	if g.Field.MineAt(x, y) {
		return g.lose(x, y, nil), nil
	}

	opened := g.Board.Reveal(g.Field, x, y)
	return g.settle(opened), nil
}

// Chord opens every hidden unflagged neighbor of an open numbered cell,
// provided exactly that many of its neighbors are flagged. With any
// other flagged-neighbor count it changes nothing. Revealing a mine this
// way loses the game immediately, the mine becoming the hit cell.
func (g *Game) Chord(x, y int) (*MoveResult, error) {
	if g.Status.Terminal() {
		return nil, InvalidActionError{"chord", "game is over"}
	}
	cell := g.Board.At(x, y)
	if !cell.IsOpen() || cell == 0 {
		return nil, InvalidActionError{"chord", "cell is not an open number"}
	}

	var (
		flags  int
		hidden []Point
	)
	for _, n := range Neighbors(x, y, g.Params.Width, g.Params.Height) {
		switch s := g.Board.At(n.X, n.Y); {
		case s.IsFlagged():
			flags++
		case s.IsHidden():
			hidden = append(hidden, n)
		}
	}
	if flags != int(cell) {
		// Not an error: the classic "pressed" no-op.
		return &MoveResult{Status: g.Status}, nil
	}

	g.MoveCount++
	var opened []Point
	for _, n := range hidden {
		if !g.Board.At(n.X, n.Y).IsHidden() {
			continue // opened by an earlier flood-fill in this chord
		}
		if g.Field.MineAt(n.X, n.Y) {
			return g.lose(n.X, n.Y, opened), nil
		}
		opened = append(opened, g.Board.Reveal(g.Field, n.X, n.Y)...)
	}
	return g.settle(opened), nil
}

// ToggleFlag advances the flag marker on a hidden cell, maintaining the
// running flagged-cell count. Valid in ready and active states only.
func (g *Game) ToggleFlag(x, y int) (*FlagResult, error) {
	if g.Status.Terminal() {
		return nil, InvalidActionError{"flag", "game is over"}
	}
	level, delta, err := g.Board.CycleFlag(x, y, g.Settings.FlagLevels)
	if err != nil {
		return nil, err
	}
	g.FlagCount += delta
	g.MoveCount++
	return &FlagResult{
		Cell:           Point{x, y},
		Level:          level,
		RemainingMines: g.RemainingMines(),
	}, nil
}

// settle checks the win condition after a successful reveal: the game is
// won exactly when every safe cell is open. Winning flags the remaining
// mines and freezes the timer.
func (g *Game) settle(opened []Point) *MoveResult {
	for i, mine := range g.Field.Mines {
		if !mine && !g.Board.Cells[i].IsOpen() {
			return &MoveResult{Revealed: opened, Status: g.Status}
		}
	}
	g.Status = StatusWon
	g.EndedAt = g.timeNow()
	for i, mine := range g.Field.Mines {
		if mine && g.Board.Cells[i].IsHidden() {
			g.Board.Cells[i] = Flag1
		}
	}
	g.FlagCount = g.Field.MineCount
	return &MoveResult{Revealed: opened, Status: g.Status, Outcome: g.Outcome()}
}

func (g *Game) lose(x, y int, opened []Point) *MoveResult {
	g.Board.set(x, y, MineHit)
	g.Hit = &Point{x, y}
	g.Status = StatusLost
	g.EndedAt = g.timeNow()
	opened = append(opened, Point{x, y})
	return &MoveResult{Revealed: opened, Status: g.Status, Outcome: g.Outcome()}
}

// Outcome classifies every cell of a finished game for rendering: the
// hit mine, correctly flagged mines, untouched mines, crossed-out wrong
// flags, and true neighbor counts everywhere else. It is a derived view;
// the board itself stays frozen as the player left it. Outcome returns
// nil while the game is still running.
func (g *Game) Outcome() GridView {
	if !g.Status.Terminal() {
		return nil
	}
	view := make(GridView, len(g.Board.Cells))
	copy(view, g.Board.Cells)
	for i, s := range view {
		mine := g.Field.Mines[i]
		switch {
		case s.IsFlagged():
			if mine {
				view[i] = MineFlagged
			} else {
				view[i] = FlagWrong
			}
		case s.IsHidden():
			if mine {
				view[i] = MineUnflagged
			} else {
				view[i] = CellState(g.Field.Adjacent[i])
			}
		}
	}
	return view
}

// View returns a snapshot of the board as the player sees it.
func (g *Game) View() GridView {
	view := make(GridView, len(g.Board.Cells))
	copy(view, g.Board.Cells)
	return view
}

func (g *Game) Cell(x, y int) CellState {
	return g.Board.At(x, y)
}

// RemainingMines is the mine count less the flagged-cell count; it goes
// negative when the player over-flags.
func (g *Game) RemainingMines() int {
	return g.Params.MineCount - g.FlagCount
}

// Elapsed is the wall-clock duration of the round: zero before the first
// click, running while active, frozen once the game ends.
func (g *Game) Elapsed() time.Duration {
	switch {
	case g.StartedAt.IsZero():
		return 0
	case !g.EndedAt.IsZero():
		return g.EndedAt.Sub(g.StartedAt)
	default:
		return g.timeNow().Sub(g.StartedAt)
	}
}
