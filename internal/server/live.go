package server

import (
	"net/http"
	"strings"
	"time"

	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  constants.WSReadBufferSize,
		WriteBufferSize: constants.WSWriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(allowedOrigins, r.Header.Get("Origin"))
		},
	}
}

// originAllowed applies the CORS origin list to websocket upgrades. Requests
// without an Origin header come from non-browser clients and are accepted.
// Entries may hold one "*" wildcard, e.g. "https://*.example.com".
func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return true
	}
	origin = strings.ToLower(origin)
	for _, a := range allowed {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "*" || a == origin {
			return true
		}
		if prefix, suffix, ok := strings.Cut(a, "*"); ok {
			if len(origin) >= len(prefix)+len(suffix) && strings.HasPrefix(origin, prefix) && strings.HasSuffix(origin, suffix) {
				return true
			}
		}
	}
	return false
}

// LiveMessage is pushed to websocket subscribers.
type LiveMessage struct {
	Type  string            `json:"type"`
	Match *domain.MatchView `json:"match,omitempty"`
}

// GET /matches/{id}/live
func (h *Handlers) Live(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	initial, updates, cancel, err := h.matchSvc.Subscribe(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("match_id", id).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	h.logger.Debug().Str("match_id", id).Msg("live subscriber connected")

	// the read side only watches for the client going away
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := writeLive(conn, LiveMessage{Type: "state", Match: initial}); err != nil {
		return
	}

	ping := time.NewTicker(constants.WSPingInterval)
	defer ping.Stop()

	for {
		select {
		case v, ok := <-updates:
			if !ok {
				return
			}
			if err := writeLive(conn, LiveMessage{Type: "state", Match: &v}); err != nil {
				h.logger.Debug().Err(err).Str("match_id", id).Msg("live subscriber write failed")
				return
			}
		case <-ping.C:
			deadline := time.Now().Add(constants.WSWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-gone:
			h.logger.Debug().Str("match_id", id).Msg("live subscriber disconnected")
			return
		}
	}
}

func writeLive(conn *websocket.Conn, msg LiveMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(constants.WSWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}
