// Package gateway terminates websocket connections and turns their
// frames into room operations. Each connection gets a session record, a
// buffered write pump and a stroke assembler; rooms never see transport
// details, only subscribers.
package gateway

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"boardsync/internal/room"
)

// Handler upgrades HTTP requests at the websocket endpoint.
type Handler struct {
	rooms       *room.Registry
	log         *slog.Logger
	defaultRoom string
	sendBuffer  int
	upgrader    websocket.Upgrader
}

// NewHandler creates the websocket endpoint handler. defaultRoom is used
// when a join names no room; sendBuffer is the per-connection outbound
// queue length.
func NewHandler(rooms *room.Registry, defaultRoom string, sendBuffer int, log *slog.Logger) *Handler {
	return &Handler{
		rooms:       rooms,
		log:         log,
		defaultRoom: defaultRoom,
		sendBuffer:  sendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The server is unauthenticated by design; any origin may join.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := newClient(h, conn)
	go c.writeLoop()
	c.readLoop()
}
