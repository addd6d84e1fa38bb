package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

type Auth struct {
	log     *logrus.Logger
	repo    *repository.Queries
	cookies *config.Cookies
	jwt     *config.JWT
}

func NewAuth(
	log *logrus.Logger,
	db *pgxpool.Pool,
	cookies *config.Cookies,
	jwt *config.JWT,
) *Auth {
	return &Auth{
		log:     log,
		repo:    repository.New(db),
		cookies: cookies,
		jwt:     jwt,
	}
}

var (
	ErrBadAuthBody        = fmt.Errorf("request body must contain url-encoded username and password")
	ErrBadPasswordTooLong = fmt.Errorf("password too long")
	ErrUsernameTaken      = fmt.Errorf("username taken")
)

func parseCredentials(
	w http.ResponseWriter, r *http.Request, log *logrus.Logger,
) (username, password string, ok bool) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return "", "", false
	}
	username = r.FormValue("username")
	password = r.FormValue("password")
	if username == "" || password == "" {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, log, wrapError(ErrBadAuthBody))
		return "", "", false
	}
	return username, password, true
}

func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	username, password, ok := parseCredentials(w, r, h.log)
	if !ok {
		return
	}

	passwordBytes := []byte(password)
	if len(passwordBytes) > 72 {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.log, wrapError(ErrBadPasswordTooLong))
		return
	}

	hash, err := bcrypt.GenerateFromPassword(passwordBytes, bcrypt.DefaultCost)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to hash password")
		return
	}

	player, err := h.repo.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, h.log, wrapError(ErrUsernameTaken))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to insert player")
		return
	}

	h.refresh(w, player)
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	username, password, ok := parseCredentials(w, r, h.log)
	if !ok {
		return
	}

	player, err := h.repo.FetchPlayer(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusUnauthorized)
		h.log.Debug("username not found")
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to fetch player")
		return
	}

	err = bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		w.WriteHeader(http.StatusUnauthorized)
		h.log.Debug("wrong password")
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		h.log.WithError(err).Error("bcrypt compare error")
		return
	}

	h.refresh(w, player)
}

func (h *Auth) refresh(w http.ResponseWriter, player *repository.Player) {
	claims := config.NewPlayerClaims(player.PlayerId, player.Username)
	token, err := h.jwt.Sign(claims)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to sign player claims")
		return
	}
	if err := h.cookies.Refresh(w, token); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to set auth cookies")
		return
	}
	sendJSONOrLog(w, h.log, &PlayerInfo{player.PlayerId, player.Username})
}

func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
}

type PlayerInfo struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

type StatusDTO struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

func (h *Auth) Status(w http.ResponseWriter, r *http.Request) {
	var status *StatusDTO
	claims, ok := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if ok {
		status = &StatusDTO{
			LoggedIn: true,
			Player:   &PlayerInfo{claims.PlayerId, claims.Username},
		}
		token, err := h.jwt.Sign(claims)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			h.log.WithError(err).Error("unable to sign refreshed claims")
			return
		}
		if err := h.cookies.Refresh(w, token); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			h.log.WithError(err).Error("unable to set auth cookies")
			return
		}
	} else {
		status = &StatusDTO{LoggedIn: false}
		h.cookies.Clear(w)
	}

	sendJSONOrLog(w, h.log, status)
}
