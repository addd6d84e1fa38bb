package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// ConnectWS upgrades the request to a websocket and plays the session
// over line commands. Every text message may carry several
// newline-separated commands; the session is persisted and a full
// snapshot is sent back after each message.
func (h *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	row, session, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	c, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Error("unable to upgrade connection")
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				h.log.WithError(err).Warn("ws read failed")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		h.log.Debug("\t> ", text)

		var last commandResult
		var cmdErr error
		for _, cmd := range byPiece(text, "\n") {
			last, cmdErr = executeCommand(session, cmd)
			if cmdErr != nil {
				break
			}
		}
		if cmdErr != nil {
			if _, engine := engineErrorStatus(cmdErr); !engine {
				h.log.WithError(cmdErr).Error("ws command failed")
				return
			}
			if err := c.WriteJSON(wrapError(cmdErr)); err != nil {
				h.log.WithError(err).Error("ws write failed")
				return
			}
			continue
		}

		if _, err := h.repo.UpdateGameSession(
			r.Context(), row.GameSessionId, session,
		); err != nil {
			h.log.WithError(err).Error("unable to update game session")
			return
		}

		dto := sessionDTO(row, session).WithMove(last.Move).WithFlag(last.Flag)
		if err := c.WriteJSON(dto); err != nil {
			h.log.WithError(err).Error("ws write failed")
			break
		}
	}
}
