package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/remsins/webhook/config"
	"github.com/remsins/webhook/internal/app"
	"github.com/remsins/webhook/pkg/logger"
)

// runWorker runs the delivery worker pool and the retention purge task
// until a shutdown signal arrives.
func runWorker(cfg *config.Config, appLogger logger.Logger) error {
	appInstance := app.NewApp(cfg, app.WithLogger(appLogger))

	if err := appInstance.InitDB(); err != nil {
		return err
	}
	if err := appInstance.InitRedis(); err != nil {
		return err
	}
	if err := appInstance.InitRepositories(); err != nil {
		return err
	}
	if err := appInstance.InitServices(); err != nil {
		return err
	}
	defer appInstance.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go appInstance.RetentionService().Run(ctx)

	workerError := make(chan error, 1)
	go func() {
		workerError <- appInstance.DeliveryWorker().RunPool(ctx, cfg.Delivery.Concurrency)
	}()

	select {
	case err := <-workerError:
		if err != nil {
			appLogger.WithField("error", err.Error()).Error("Worker error")
		}
		return err
	case sig := <-shutdown:
		appLogger.WithField("signal", sig.String()).Info("Shutdown signal received")
		cancel()

		// Give in-flight deliveries time to finish their log writes.
		select {
		case <-workerError:
		case <-time.After(30 * time.Second):
			appLogger.Warn("Worker pool did not stop in time")
		}
		return nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel)

	if err := runWorker(cfg, appLogger); err != nil {
		os.Exit(1)
	}
}
