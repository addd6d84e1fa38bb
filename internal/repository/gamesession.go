package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type GameSession struct {
	GameSessionId int64
	PlayerId      *int64
	AnonToken     *string
	Difficulty    string
	Width         int
	Height        int
	MineCount     int
	Status        string
	State         []byte
	StartedAt     pgtype.Timestamptz
	EndedAt       pgtype.Timestamptz
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

// Session decodes the stored engine snapshot.
func (s GameSession) Session() (*mines.Session, error) {
	return mines.ParseSessionFromBytes(s.State)
}

type CreateGameSessionParams struct {
	PlayerId  *int64
	AnonToken *string
}

func sessionArgs(session *mines.Session) (pgx.NamedArgs, error) {
	state, err := session.Bytes()
	if err != nil {
		return nil, err
	}
	params := session.Params()
	game := session.Game
	var startedAt, endedAt *time.Time
	if !game.StartedAt.IsZero() {
		startedAt = &game.StartedAt
	}
	if !game.EndedAt.IsZero() {
		endedAt = &game.EndedAt
	}
	return pgx.NamedArgs{
		"difficulty": string(session.Difficulty),
		"width":      params.Width,
		"height":     params.Height,
		"mine_count": params.MineCount,
		"status":     session.Status().String(),
		"state":      state,
		"started_at": startedAt,
		"ended_at":   endedAt,
	}, nil
}

func (q *Queries) CreateGameSession(
	ctx context.Context, session *mines.Session, params CreateGameSessionParams,
) (*GameSession, error) {
	args, err := sessionArgs(session)
	if err != nil {
		return nil, err
	}
	args["player_id"] = params.PlayerId
	args["anon_token"] = params.AnonToken

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, anon_token, difficulty, width, height, mine_count,
			status, state, started_at, ended_at
		)
		VALUES (
			@player_id, @anon_token, @difficulty, @width, @height, @mine_count,
			@status, @state, @started_at, @ended_at
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

func (q *Queries) FetchGameSession(
	ctx context.Context, gameSessionId int64,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionId,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

func (q *Queries) UpdateGameSession(
	ctx context.Context, gameSessionId int64, session *mines.Session,
) (*GameSession, error) {
	args, err := sessionArgs(session)
	if err != nil {
		return nil, err
	}
	args["game_session_id"] = gameSessionId

	rows, _ := q.db.Query(
		ctx,
		`UPDATE game_session SET
			difficulty = @difficulty,
			width = @width,
			height = @height,
			mine_count = @mine_count,
			status = @status,
			state = @state,
			started_at = @started_at,
			ended_at = @ended_at,
			updated_at = now()
		WHERE game_session_id = @game_session_id
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}
