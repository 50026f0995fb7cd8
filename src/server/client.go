package server

import (
	"context"
	"time"

	"reactive-dashboard/src/helpers"
	"reactive-dashboard/src/models"
	"reactive-dashboard/src/stream"

	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------

const (
	writeWait      = 2 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// -----------------------------------------------------------------------------
// Client Structure
// -----------------------------------------------------------------------------

// Client is one websocket subscriber to a dashboard stream
type Client struct {
	server *Server
	conn   *websocket.Conn
	symbol string
	filter dashboardFilter
	cancel context.CancelFunc
}

// -----------------------------------------------------------------------------
// readPump - watchdog for the connection.
// Returns when the peer goes away, which cancels the dashboard stream.
// -----------------------------------------------------------------------------

func (c *Client) readPump() {
	defer c.cancel()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.server.Logger.Info("WebSocket error: %v", err)
			}
			return
		}
	}
}

// -----------------------------------------------------------------------------
// writePump - forwards dashboard records to the peer
// -----------------------------------------------------------------------------

func (c *Client) writePump(st *stream.Stream[models.MStockInfo]) error {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		st.Cancel()
		c.conn.Close()
	}()

	for {
		select {
		case info := <-st.Values():
			if !c.filter.Match(info) {
				continue
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(info); err != nil {
				c.server.Logger.Info("Write error: %v", err)
				return err
			}

		case <-st.Done():
			err := st.Err()
			code, reason := websocket.CloseNormalClosure, "stream cancelled"
			if err != nil && !helpers.IsCancellation(err) {
				code, reason = websocket.CloseInternalServerErr, "stream failed"
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))
			return err

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}
