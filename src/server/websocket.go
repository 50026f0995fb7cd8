package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return s.allowedOrigin(r.Header.Get("Origin"))
		},
	}
}

// -----------------------------------------------------------------------------

// handleWebSocket mirrors /dashboard/:symbol as JSON text frames
func (s *Server) handleWebSocket(c *gin.Context) {
	symbol := strings.TrimSpace(c.Param("symbol"))
	if symbol == "" {
		c.String(http.StatusBadRequest, "symbol is required")
		return
	}
	filter, err := newDashboardFilter(c.Query("filter"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid filter: %v", err)
		return
	}

	upgrader := s.upgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Warning("WebSocket upgrade failed: %v", err)
		return
	}

	// The request context is not tied to a hijacked connection; the read pump owns cancellation.
	ctx, cancel := context.WithCancel(s.baseCtx)
	st, err := s.subscribeDashboard(ctx, symbol)
	if err != nil {
		cancel()
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		conn.Close()
		return
	}
	defer s.track()()

	client := &Client{server: s, conn: conn, symbol: symbol, filter: filter, cancel: cancel}
	done := make(chan error, 1)
	go func() { done <- client.writePump(st) }()

	client.readPump()
	s.endDashboard(symbol, <-done)
}
