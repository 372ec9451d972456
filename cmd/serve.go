package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/giygas/interactions-api/health"
	"github.com/giygas/interactions-api/interfaces"
	"github.com/giygas/interactions-api/logging"
	"github.com/giygas/interactions-api/scheduler"
	"github.com/giygas/interactions-api/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// serveCmd runs the HTTP API until SIGINT or SIGTERM
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logging.InitLoggerWithOptions(logging.Options{
			Dir:            cfg.LogDir,
			Level:          logging.ParseLogLevel(cfg.LogLevel),
			RetentionWeeks: cfg.LogRetentionWeeks,
			MaxFileSize:    cfg.MaxLogFileSize,
		})
		defer logging.Close()

		logging.Info("Starting interactions API", "env", cfg.Env.String(), "log_level", cfg.LogLevel)

		dc, err := newDataContainer(cfg)
		if err != nil {
			logging.Error("Failed to load catalog", "error", err)
			return err
		}
		dc.SetServerStartTime(time.Now())

		var cleaner interfaces.LogCleaner
		if logging.DefaultLoggingService.Rotator != nil {
			cleaner = logging.DefaultLoggingService.Rotator
		}
		sched := scheduler.NewScheduler(health.NewHealthChecker(dc), cleaner)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer sched.Stop()

		srv := server.NewServer(cfg, dc)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(srv.Start)
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil {
			logging.Error("Server stopped with error", "error", err)
			return err
		}
		return nil
	},
}
