package handlers

import (
	"encoding/json"
	"errors"
	"iter"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func sendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Add("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, log *logrus.Logger, v any) {
	if _, err := sendJSON(w, v); err != nil {
		log.WithError(err).Error("unable to send response")
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

// engineErrorStatus maps recoverable engine errors onto HTTP statuses.
// The second return is false for anything that is not an engine error.
func engineErrorStatus(err error) (int, bool) {
	var (
		configErr mines.ConfigError
		oobErr    mines.OutOfBoundsError
		actionErr mines.InvalidActionError
	)
	switch {
	case errors.As(err, &configErr), errors.As(err, &oobErr):
		return http.StatusBadRequest, true
	case errors.As(err, &actionErr):
		return http.StatusConflict, true
	default:
		return 0, false
	}
}

// rejectEngineError reports recoverable engine errors to the client and
// returns true; anything else is left to the caller.
func rejectEngineError(w http.ResponseWriter, log *logrus.Logger, err error) bool {
	status, ok := engineErrorStatus(err)
	if !ok {
		return false
	}
	w.WriteHeader(status)
	sendJSONOrLog(w, log, wrapError(err))
	return true
}

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}
