package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/matchday-app/championship-engine/fixtures"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the deployed frontend origin before exposing
		// the websocket endpoint publicly.
		return true
	},
}

type WebSocketHandler struct {
	hub    *fixtures.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *fixtures.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeWs subscribes a client to live fixture and result events for one
// championship at /ws/championships/{championshipID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	championshipID := chi.URLParam(r, "championshipID")
	if championshipID == "" {
		http.Error(w, "missing championshipID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("failed to upgrade websocket connection",
			slog.String("championship_id", championshipID), slog.Any("error", err))
		return
	}

	client := &fixtures.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: championshipID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
