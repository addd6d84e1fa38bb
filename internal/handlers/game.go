package handlers

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

type GameHandler struct {
	log      *logrus.Logger
	repo     *repository.Queries
	cookies  *config.Cookies
	defaults config.GameConfig
	upgrader websocket.Upgrader
	rnd      *rand.Rand
}

func NewGameHandler(
	log *logrus.Logger,
	db *pgxpool.Pool,
	cookies *config.Cookies,
	defaults config.GameConfig,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		log:      log,
		repo:     repository.New(db),
		cookies:  cookies,
		defaults: defaults,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		rnd: rnd,
	}
}

// newSession builds an engine session from the request parameters,
// falling back to the server defaults for anything omitted.
func (h *GameHandler) newSession(dto NewGameDTO) (*mines.Session, error) {
	difficulty, err := mines.ParseDifficulty(dto.Difficulty)
	if err != nil {
		return nil, err
	}

	settings := h.defaults.Settings()
	if dto.FirstSuccess != nil {
		settings.FirstSuccess = *dto.FirstSuccess
	}
	if dto.FlagLevels != nil {
		settings.FlagLevels = *dto.FlagLevels
	}

	session, err := mines.NewSession(difficulty, settings, h.rnd)
	if err != nil {
		return nil, err
	}
	if difficulty == mines.Custom {
		err = session.SetCustomParams(mines.GameParams{
			Width:     dto.Width,
			Height:    dto.Height,
			MineCount: dto.MineCount,
		})
		if err != nil {
			return nil, err
		}
	}
	return session, nil
}

func (h *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.log, wrapError(err))
		return
	}

	session, err := h.newSession(dto)
	if err != nil {
		if !rejectEngineError(w, h.log, err) {
			w.WriteHeader(http.StatusInternalServerError)
			h.log.WithError(err).Error("unable to create session")
		}
		return
	}

	var createParams repository.CreateGameSessionParams
	claims, loggedIn := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if loggedIn {
		h.log.WithField("username", claims.Username).Debug("creating player session")
		createParams.PlayerId = &claims.PlayerId
	} else {
		h.log.Debug("creating anonymous session")
		token := h.anonToken(w, r)
		createParams.AnonToken = &token
	}

	row, err := h.repo.CreateGameSession(r.Context(), session, createParams)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to insert game session")
		return
	}

	sendJSONOrLog(w, h.log, sessionDTO(row, session))
}

// anonToken returns the anonymous player token from the request cookie,
// minting and setting a fresh one when absent.
func (h *GameHandler) anonToken(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie("anon"); err == nil && c.Value != "" {
		return c.Value
	}
	token := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     "anon",
		Path:     "/",
		Value:    token,
		HttpOnly: true,
		Domain:   h.cookies.Domain,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.SameSite,
	})
	return token
}

// loadSession fetches a session row and decodes its engine snapshot,
// writing the appropriate error response when it cannot.
func (h *GameHandler) loadSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameSession, *mines.Session, bool) {
	gameSessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}
	row, err := h.repo.FetchGameSession(r.Context(), gameSessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to fetch game session")
		return nil, nil, false
	}
	session, err := row.Session()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("db returned invalid game_session.state")
		return nil, nil, false
	}
	return row, session, true
}

func (h *GameHandler) saveSession(
	w http.ResponseWriter, r *http.Request,
	row *repository.GameSession, session *mines.Session,
) bool {
	if _, err := h.repo.UpdateGameSession(
		r.Context(), row.GameSessionId, session,
	); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to update game session")
		return false
	}
	return true
}

func (h *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	row, session, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, h.log, sessionDTO(row, session))
}

func (h *GameHandler) Click(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.log, wrapError(err))
		return
	}
	row, session, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	move, err := session.Click(pos.X, pos.Y)
	if err != nil {
		if !rejectEngineError(w, h.log, err) {
			w.WriteHeader(http.StatusInternalServerError)
			h.log.WithError(err).Error("click failed")
		}
		return
	}
	if !h.saveSession(w, r, row, session) {
		return
	}
	sendJSONOrLog(w, h.log, sessionDTO(row, session).WithMove(move))
}

func (h *GameHandler) Chord(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.log, wrapError(err))
		return
	}
	row, session, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	move, err := session.Chord(pos.X, pos.Y)
	if err != nil {
		if !rejectEngineError(w, h.log, err) {
			w.WriteHeader(http.StatusInternalServerError)
			h.log.WithError(err).Error("chord failed")
		}
		return
	}
	if !h.saveSession(w, r, row, session) {
		return
	}
	sendJSONOrLog(w, h.log, sessionDTO(row, session).WithMove(move))
}

func (h *GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.log, wrapError(err))
		return
	}
	row, session, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	flag, err := session.ToggleFlag(pos.X, pos.Y)
	if err != nil {
		if !rejectEngineError(w, h.log, err) {
			w.WriteHeader(http.StatusInternalServerError)
			h.log.WithError(err).Error("flag failed")
		}
		return
	}
	if !h.saveSession(w, r, row, session) {
		return
	}
	sendJSONOrLog(w, h.log, sessionDTO(row, session).WithFlag(flag))
}

func (h *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	row, session, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	if err := session.PrepareNewGame(); err != nil {
		if !rejectEngineError(w, h.log, err) {
			w.WriteHeader(http.StatusInternalServerError)
			h.log.WithError(err).Error("unable to prepare new game")
		}
		return
	}
	if !h.saveSession(w, r, row, session) {
		return
	}
	sendJSONOrLog(w, h.log, sessionDTO(row, session))
}

func (h *GameHandler) ChangeDifficulty(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseChangeDifficultyDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.log, wrapError(err))
		return
	}
	row, session, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	if dto.Difficulty == string(mines.Custom) {
		err = session.SetCustomParams(mines.GameParams{
			Width:     dto.Width,
			Height:    dto.Height,
			MineCount: dto.MineCount,
		})
	} else {
		err = session.ChangeDifficulty(dto.Difficulty)
	}
	if err != nil {
		if !rejectEngineError(w, h.log, err) {
			w.WriteHeader(http.StatusInternalServerError)
			h.log.WithError(err).Error("unable to change difficulty")
		}
		return
	}
	if !h.saveSession(w, r, row, session) {
		return
	}
	sendJSONOrLog(w, h.log, sessionDTO(row, session))
}
