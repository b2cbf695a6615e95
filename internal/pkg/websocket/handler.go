package websocket

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/yigit/mentorhub/internal/middleware"
	"github.com/yigit/mentorhub/internal/pkg/helpers"
)

// Handler upgrades HTTP requests to live forum feed connections
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler. allowedOrigin follows the CORS
// setting; empty or "*" accepts any origin.
func NewHandler(hub *Hub, allowedOrigin string, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		upgrader: newUpgrader(allowedOrigin),
		logger:   logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to live forum events
// @Description Upgrades to a WebSocket that receives thread and reply events. With thread_id only that thread's events are sent; reply deletions go to global subscribers.
// @Tags forum
// @Param thread_id query int false "Thread to follow"
// @Success 101 {string} string "Switching Protocols"
// @Failure 400 {object} dto.ErrorResponse "Invalid thread_id"
// @Router /forum/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	threadID, ok, err := helpers.QueryInt64(c, "thread_id")
	if err != nil {
		middleware.HandleInvalidID(c, "thread_id")
		return
	}
	if !ok {
		threadID = AllThreads
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response
		h.logger.Warn().Err(err).Int64("threadID", threadID).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:      h.hub,
		conn:     conn,
		send:     make(chan []byte, 32),
		threadID: threadID,
		logger:   h.logger,
	}
	if !h.hub.join(client) {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("threadID", threadID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
