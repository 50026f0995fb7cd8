package app

import (
	"context"
	"time"

	"reactive-dashboard/src/backpressure"
	"reactive-dashboard/src/config"
	"reactive-dashboard/src/dashboard"
	"reactive-dashboard/src/grpc_control"
	"reactive-dashboard/src/helpers"
	"reactive-dashboard/src/interfaces"
	"reactive-dashboard/src/logger"
	"reactive-dashboard/src/server"
	"reactive-dashboard/src/stats"

	"golang.org/x/sync/errgroup"
)

// App owns every long-lived component of the service.
// The stats counters live exactly as long as the App.
type App struct {
	Config *config.Config
	Logger *logger.Logger
	Stats  *stats.Counters

	MemoryLimitMB int

	Backpressure *backpressure.Service
	Dashboard    *dashboard.Service
	HTTP         *server.Server
	GRPC         *grpc_control.Server
}

// -----------------------------------------------------------------------------

func New(cfg *config.Config, log *logger.Logger) *App {
	counters := stats.NewCounters()
	bp := backpressure.NewService(counters, log.Named("backpressure"))
	dash := dashboard.NewService(log.Named("stock"))

	return &App{
		Config:        cfg,
		Logger:        log,
		Stats:         counters,
		MemoryLimitMB: helpers.ApplyMemoryLimit(log.Named("resources")),
		Backpressure:  bp,
		Dashboard:     dash,
		HTTP:          server.NewServer(cfg.MConfig, log.Named("server"), bp, dash, counters),
		GRPC: grpc_control.NewServer(cfg.GRPCAddr(),
			grpc_control.NewControlService(counters, log.Named("control")),
			log.Named("grpc")),
	}
}

// -----------------------------------------------------------------------------

// Run serves HTTP and gRPC until ctx is cancelled or either server fails,
// then stops both within the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	servers := []interfaces.IDataExchanger{a.HTTP, a.GRPC}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(srv.Start)
	}

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("Shutting down...")

		timeout := time.Duration(a.Config.ShutdownTimeoutSeconds) * time.Second
		stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var firstErr error
		for _, srv := range servers {
			if err := srv.Stop(stopCtx); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	})

	err := g.Wait()
	a.Logger.Info("Stopped. %s", a.Stats.Report())
	return err
}
