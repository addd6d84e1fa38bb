package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

type Highscores struct {
	log  *logrus.Logger
	repo *repository.Queries
}

func NewHighscores(log *logrus.Logger, db *pgxpool.Pool) *Highscores {
	return &Highscores{log: log, repo: repository.New(db)}
}

func (h *Highscores) List(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseHighscoreFilterDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.log, wrapError(err))
		return
	}

	var filter repository.HighscoreFilter
	if dto.Username != "" {
		filter.Username = &dto.Username
	}
	if dto.Difficulty != "" {
		if _, err := mines.ParseDifficulty(dto.Difficulty); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, h.log, wrapError(err))
			return
		}
		filter.Difficulty = &dto.Difficulty
	}

	scores, err := h.repo.Highscores(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to fetch highscores")
		return
	}

	sendJSONOrLog(w, h.log, scores)
}
