package http

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"brandpulse/internal/infrastructure"
	ws "brandpulse/internal/websocket"
)

// WSHandler upgrades dashboard connections and attaches them to the hub
// for reload notifications.
type WSHandler struct {
	hub      *ws.Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a websocket handler.
func NewWSHandler(hub *ws.Hub, logger *slog.Logger) *WSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WSHandler{
		hub:    hub,
		logger: logger.With(slog.String("handler", "websocket")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dashboard is served same-origin; cross-origin pages
			// only receive reload pings, so all origins are accepted.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP handles GET /ws.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "WebSocket upgrade failed",
			slog.String("error", err.Error()),
			slog.String("remote_addr", r.RemoteAddr))
		return
	}

	ws.ServeWS(h.hub, conn, infrastructure.GetTraceID(r.Context()))
}
