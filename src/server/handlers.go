package server

import (
	"context"
	"net/http"
	"strings"

	"reactive-dashboard/src/helpers"
	"reactive-dashboard/src/models"
	"reactive-dashboard/src/stats"
	"reactive-dashboard/src/stream"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// SSE plumbing
// -----------------------------------------------------------------------------

// openEventStream commits the SSE headers so clients see the stream before the first event
func openEventStream(c *gin.Context) {
	h := c.Writer.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()
}

// writeEvent renders one data-only SSE frame and flushes it
func writeEvent(c *gin.Context, data any) error {
	if err := (sse.Event{Data: data}).Render(c.Writer); err != nil {
		return err
	}
	c.Writer.Flush()
	return nil
}

// -----------------------------------------------------------------------------

func (s *Server) track() func() {
	s.activeStreams.Add(1)
	return func() { s.activeStreams.Add(-1) }
}

// -----------------------------------------------------------------------------
// Backpressure endpoints
// -----------------------------------------------------------------------------

func (s *Server) streamBackpressure(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		st, delay, err := s.backpressure.Open(ctx, mode)
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		defer s.track()()

		openEventStream(c)
		err = stream.Consume(ctx, st, delay, func(v string) error {
			return writeEvent(c, v)
		})
		s.errors.Handle(err, mode+" stream")
	}
}

// -----------------------------------------------------------------------------

func (s *Server) getStats(c *gin.Context) {
	c.String(http.StatusOK, s.stats.Report())
}

// -----------------------------------------------------------------------------

func (s *Server) resetStats(c *gin.Context) {
	s.stats.Reset()
	c.String(http.StatusOK, stats.ResetMessage)
}

// -----------------------------------------------------------------------------
// Dashboard endpoint
// -----------------------------------------------------------------------------

func (s *Server) streamDashboard(c *gin.Context) {
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

	ctx := c.Request.Context()
	st, err := s.subscribeDashboard(ctx, symbol)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	defer s.track()()

	openEventStream(c)
	err = stream.Consume(ctx, st, 0, func(info models.MStockInfo) error {
		if !filter.Match(info) {
			return nil
		}
		return writeEvent(c, info)
	})
	s.endDashboard(symbol, err)
}

// -----------------------------------------------------------------------------

func (s *Server) subscribeDashboard(ctx context.Context, symbol string) (*stream.Stream[models.MStockInfo], error) {
	st, err := s.dashboard.DashboardStream(ctx, symbol)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Client subscribed to dashboard for symbol: %s", symbol)

	session := s.dashboard.MarketSession(symbol)
	state := "closed"
	if session.Open {
		state = "open"
	}
	s.Logger.Info("Market %s for %s is %s", session.MIC, symbol, state)
	return st, nil
}

// -----------------------------------------------------------------------------

func (s *Server) endDashboard(symbol string, err error) {
	if helpers.IsCancellation(err) {
		s.Logger.Info("Client unsubscribed from dashboard for symbol: %s", symbol)
	}
	s.errors.Handle(err, "dashboard "+symbol)
}
