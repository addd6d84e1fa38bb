package handlers

import (
	"net/url"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

type NewGameDTO struct {
	Difficulty   string `schema:"difficulty,required"`
	Width        int    `schema:"width"`
	Height       int    `schema:"height"`
	MineCount    int    `schema:"mine_count"`
	FirstSuccess *bool  `schema:"first_success"`
	FlagLevels   *int   `schema:"flag_levels"`
}

func ParseNewGameDTO(src url.Values) (NewGameDTO, error) {
	var dto NewGameDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src url.Values) (PositionDTO, error) {
	var dto PositionDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

type ChangeDifficultyDTO struct {
	Difficulty string `schema:"difficulty,required"`
	Width      int    `schema:"width"`
	Height     int    `schema:"height"`
	MineCount  int    `schema:"mine_count"`
}

func ParseChangeDifficultyDTO(src url.Values) (ChangeDifficultyDTO, error) {
	var dto ChangeDifficultyDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

type HighscoreFilterDTO struct {
	Username   string `schema:"username"`
	Difficulty string `schema:"difficulty"`
}

func ParseHighscoreFilterDTO(src url.Values) (HighscoreFilterDTO, error) {
	var dto HighscoreFilterDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

// GameSessionDTO is the full session snapshot a client renders from,
// plus the per-action deltas (newly revealed cells, flag change,
// outcome classification) when the request changed something.
type GameSessionDTO struct {
	GameSessionId  string            `json:"game_session_id"`
	Difficulty     string            `json:"difficulty"`
	Width          int               `json:"width"`
	Height         int               `json:"height"`
	MineCount      int               `json:"mine_count"`
	FirstSuccess   bool              `json:"first_success"`
	FlagLevels     int               `json:"flag_levels"`
	Grid           mines.GridView    `json:"grid"`
	Status         string            `json:"status"`
	RemainingMines int               `json:"remaining_mines"`
	MoveCount      int               `json:"move_count"`
	ElapsedMs      int64             `json:"elapsed_ms"`
	StartedAt      *int64            `json:"started_at,omitempty"`
	EndedAt        *int64            `json:"ended_at,omitempty"`
	Revealed       []mines.Point     `json:"revealed,omitempty"`
	Flag           *mines.FlagResult `json:"flag,omitempty"`
	Outcome        mines.GridView    `json:"outcome,omitempty"`
}

func NewGameSessionDTO(
	gameSessionId int64, session *mines.Session,
) *GameSessionDTO {
	params := session.Params()
	game := session.Game
	dto := &GameSessionDTO{
		GameSessionId:  strconv.FormatInt(gameSessionId, 10),
		Difficulty:     string(session.Difficulty),
		Width:          params.Width,
		Height:         params.Height,
		MineCount:      params.MineCount,
		FirstSuccess:   session.Settings.FirstSuccess,
		FlagLevels:     session.Settings.FlagLevels,
		Grid:           session.View(),
		Status:         session.Status().String(),
		RemainingMines: session.RemainingMines(),
		MoveCount:      session.MoveCount(),
		ElapsedMs:      session.Elapsed().Milliseconds(),
	}
	if !game.StartedAt.IsZero() {
		ms := game.StartedAt.UnixMilli()
		dto.StartedAt = &ms
	}
	if !game.EndedAt.IsZero() {
		ms := game.EndedAt.UnixMilli()
		dto.EndedAt = &ms
	}
	return dto
}

func (dto *GameSessionDTO) WithMove(move *mines.MoveResult) *GameSessionDTO {
	if move != nil {
		dto.Revealed = move.Revealed
		dto.Outcome = move.Outcome
	}
	return dto
}

func (dto *GameSessionDTO) WithFlag(flag *mines.FlagResult) *GameSessionDTO {
	dto.Flag = flag
	return dto
}

func sessionDTO(row *repository.GameSession, session *mines.Session) *GameSessionDTO {
	return NewGameSessionDTO(row.GameSessionId, session)
}
