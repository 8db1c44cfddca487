package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/luxewheels/app/services"
	"github.com/shashiranjanraj/luxewheels/config"
	"github.com/shashiranjanraj/luxewheels/pkg/cache"
	"github.com/shashiranjanraj/luxewheels/pkg/database"
	"github.com/shashiranjanraj/luxewheels/pkg/logger"
	"github.com/shashiranjanraj/luxewheels/pkg/metrics"
	"github.com/shashiranjanraj/luxewheels/pkg/schedule"
	"github.com/shashiranjanraj/luxewheels/pkg/storage"
)

var refreshAtFlag string

// luxewheels schedule:run
var scheduleRunCmd = &cobra.Command{
	Use:   "schedule:run",
	Short: "Start the scheduler worker (nightly fleet refresh + /metrics)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		if err := cache.Connect(); err != nil {
			logger.Warn("worker: cache unavailable", "error", err)
		}
		storage.Connect()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fleet := services.NewFleetService(database.DB)
		schedule.Daily().At(refreshAtFlag).Name("fleet-refresh").WithoutOverlapping().Run(func() {
			if _, err := fleet.Refresh(time.Now()); err != nil {
				logger.Error("worker: fleet refresh failed", "error", err)
			}
		})

		tasks := schedule.List()
		fmt.Println("Registered scheduled tasks:")
		for _, t := range tasks {
			fmt.Println("  •", t)
		}

		// Prometheus scrape endpoint.
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: config.MetricsAddr(), Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("worker: metrics server", "error", err)
			}
		}()
		logger.Info("worker: serving metrics", "addr", config.MetricsAddr())

		fmt.Println("🕐 Scheduler started. Press Ctrl+C to stop.")
		schedule.Start(ctx)

		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		fmt.Println("\n⚡ Scheduler stopped.")
		return nil
	},
}

func init() {
	scheduleRunCmd.Flags().StringVar(&refreshAtFlag, "refresh-at", "03:00", "Wall-clock time (HH:MM) of the nightly fleet refresh")
}
