package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"reactive-dashboard/src/app"
	"reactive-dashboard/src/config"
	"reactive-dashboard/src/logger"

	"github.com/spf13/cobra"
)

// -----------------------------------------------------------------------------

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// -----------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "reactive-dashboard",
		Short:         "Backpressure demo streams and a combined stock dashboard over SSE",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

// -----------------------------------------------------------------------------

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Start the HTTP and gRPC servers",
		Aliases: []string{"run", "start"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)
			defer appLogger.Sync()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			appLogger.Info("HTTP on %s, gRPC on %s", cfg.HTTPAddr(), cfg.GRPCAddr())
			return app.New(cfg, appLogger).Run(ctx)
		},
	}

	cmd.Flags().String("config", "", "path to a YAML config file (defaults are used when empty)")
	cmd.Flags().String("env-file", ".env", "dotenv file loaded before DASHBOARD_* overrides")
	cmd.Flags().String("host", "", "HTTP listen host")
	cmd.Flags().Int("port", 0, "HTTP listen port")
	cmd.Flags().Int("grpc-port", 0, "gRPC control port")
	cmd.Flags().String("log-level", "", "DEBUG, INFO, WARNING or ERROR")
	return cmd
}

// -----------------------------------------------------------------------------

// loadConfig applies file, then .env and DASHBOARD_* variables, then flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg := config.Default()
	if path != "" {
		loaded, err := config.NewConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("grpc-port") {
		cfg.GrpcPort, _ = flags.GetInt("grpc-port")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
