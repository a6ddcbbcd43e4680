package handler

import (
	"net/http"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler upgrades planner screens to live settings updates
type WebSocketHandler struct {
	hub       *websocket.Hub
	origins   map[string]struct{}
	anyOrigin bool
	upgrader  ws.Upgrader
}

// NewWebSocketHandler creates a WebSocketHandler accepting the given browser origins.
// A "*" entry accepts any origin, matching the CORS configuration.
func NewWebSocketHandler(hub *websocket.Hub, allowedOrigins []string) *WebSocketHandler {
	h := &WebSocketHandler{
		hub:     hub,
		origins: make(map[string]struct{}, len(allowedOrigins)),
	}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			h.anyOrigin = true
		}
		h.origins[origin] = struct{}{}
	}
	h.upgrader = ws.Upgrader{
		ReadBufferSize:  512,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin accepts non-browser clients (no Origin header) and configured origins
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get(echo.HeaderOrigin)
	if origin == "" || h.anyOrigin {
		return true
	}
	if _, ok := h.origins[origin]; ok {
		return true
	}

	log.Warn().Str("origin", origin).Msg("WebSocket origin rejected")
	return false
}

// HandleWS handles GET /api/v1/ws
// @Summary Live settings events
// @Description Upgrades to a WebSocket that receives settings.created and settings.updated events. The latest event is replayed on connect.
// @Tags live
// @Success 101
// @Router /ws [get]
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written the error response
		log.Debug().Err(err).Msg("WebSocket upgrade failed")
		return nil
	}

	client := websocket.NewClient(conn)
	client.Serve(h.hub)

	log.Info().
		Str("client_id", client.ID()).
		Int("clients", h.hub.ClientCount()).
		Msg("WebSocket client connected")
	return nil
}
