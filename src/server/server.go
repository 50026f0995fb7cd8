package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"reactive-dashboard/src/backpressure"
	"reactive-dashboard/src/helpers"
	"reactive-dashboard/src/interfaces"
	"reactive-dashboard/src/logger"
	"reactive-dashboard/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// Server
// -----------------------------------------------------------------------------

type Server struct {
	Config *models.MConfig
	Logger *logger.Logger
	engine *gin.Engine
	http   *http.Server

	backpressure interfaces.IBackpressureSource
	dashboard    interfaces.IDashboardSource
	stats        interfaces.IStatsSink
	errors       *helpers.ErrorHandler

	// Cancelled by Stop so that open streams end before Shutdown waits on them
	baseCtx    context.Context
	baseCancel context.CancelFunc

	activeStreams atomic.Int64
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewServer(
	cfg *models.MConfig,
	log *logger.Logger,
	bp interfaces.IBackpressureSource,
	dash interfaces.IDashboardSource,
	sink interfaces.IStatsSink,
) *Server {
	if !strings.EqualFold(cfg.LogLevel, "DEBUG") {
		gin.SetMode(gin.ReleaseMode)
	}

	baseCtx, baseCancel := context.WithCancel(context.Background())
	s := &Server{
		Config:       cfg,
		Logger:       log,
		engine:       gin.New(),
		backpressure: bp,
		dashboard:    dash,
		stats:        sink,
		errors:       helpers.NewErrorHandler(log.Named("streams")),
		baseCtx:      baseCtx,
		baseCancel:   baseCancel,
	}

	s.engine.Use(gin.Recovery(), s.requestLogger(), s.cors())
	s.setupRoutes()

	s.http = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return s.baseCtx },
	}
	return s
}

// -----------------------------------------------------------------------------
// Middleware
// -----------------------------------------------------------------------------

func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if s.allowedOrigin(origin) && origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, Last-Event-ID, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// -----------------------------------------------------------------------------

func (s *Server) allowedOrigin(origin string) bool {
	if origin == "" {
		return true
	}
	return s.Config.CorsOriginPrefix != "" && strings.HasPrefix(origin, s.Config.CorsOriginPrefix)
}

// -----------------------------------------------------------------------------

func (s *Server) requestLogger() gin.HandlerFunc {
	log := s.Logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("%s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *Server) setupRoutes() {
	bp := s.engine.Group("/backpressure")
	for _, mode := range backpressure.Modes {
		bp.GET("/"+mode, s.streamBackpressure(mode))
	}
	bp.GET("/stats", s.getStats)
	bp.GET("/reset", s.resetStats)

	dash := s.engine.Group("/dashboard")
	dash.GET("/health", s.getDashboardHealth)
	dash.GET("/:symbol", s.streamDashboard)

	s.engine.GET("/ws/dashboard/:symbol", s.handleWebSocket)
	s.engine.GET("/api/health", s.getHealth)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Handler exposes the router, e.g. for httptest
func (s *Server) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------

func (s *Server) Start() error {
	s.http.Addr = net.JoinHostPort(s.Config.Host, strconv.Itoa(s.Config.Port))
	s.Logger.Info("Starting server on %s", s.http.Addr)

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

// Stop ends every open stream, then waits for handlers to return
func (s *Server) Stop(ctx context.Context) error {
	s.baseCancel()
	return s.http.Shutdown(ctx)
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"active_streams": s.activeStreams.Load(),
		"stream_errors":  s.errors.Count(),
	})
}

// -----------------------------------------------------------------------------

func (s *Server) getDashboardHealth(c *gin.Context) {
	c.String(http.StatusOK, "Stock Dashboard is running!")
}
