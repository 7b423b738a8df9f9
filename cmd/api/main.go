package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Notifuse/emailcomposer/config"
	"github.com/Notifuse/emailcomposer/internal/app"
	"github.com/Notifuse/emailcomposer/pkg/logger"
)

// osExit is a variable to allow mocking os.Exit in tests
var osExit = os.Exit

// For testing purposes - allows us to mock the signal channel
var signalNotify = signal.Notify

const (
	// shutdownTimeout bounds how long in-flight renders and uploads may run
	shutdownTimeout = 30 * time.Second
	// forceShutdownDelay is how long a forced shutdown waits before giving up
	forceShutdownDelay = 2 * time.Second
)

// runServer contains the core server logic, extracted for testability
func runServer(cfg *config.Config, appLogger logger.Logger, opts ...app.AppOption) error {
	appInstance := app.NewApp(cfg, append([]app.AppOption{app.WithLogger(appLogger)}, opts...)...)

	if err := appInstance.Initialize(); err != nil {
		appLogger.WithField("error", err.Error()).Error("Failed to initialize application")
		return err
	}

	// Set up graceful shutdown - single channel for all signals
	shutdown := make(chan os.Signal, 1)
	signalNotify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverError := make(chan error, 1)
	go func() {
		appLogger.Info("Server started successfully")
		serverError <- appInstance.Start()
	}()

	select {
	case err := <-serverError:
		if err != nil {
			appLogger.WithField("error", err.Error()).Error("Server error")
		}
		return err
	case sig := <-shutdown:
		appLogger.WithField("signal", sig.String()).Info("Shutdown signal received - starting graceful shutdown")
		appLogger.Info("Send signal again (Ctrl+C) to force immediate shutdown")

		appInstance.SetShutdownTimeout(shutdownTimeout)

		// Give the context a small buffer beyond the app's internal timeout
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout+5*time.Second)
		defer cancel()

		appLogger.WithField("active_requests", appInstance.GetActiveRequestCount()).Info("Starting graceful shutdown")

		forceShutdown := make(chan os.Signal, 1)
		signalNotify(forceShutdown, os.Interrupt, syscall.SIGTERM)

		shutdownDone := make(chan error, 1)
		go func() {
			shutdownDone <- appInstance.Shutdown(ctx)
		}()

		select {
		case err := <-shutdownDone:
			if err != nil {
				appLogger.WithField("error", err.Error()).Error("Error during graceful shutdown")
				return err
			}
			appLogger.Info("Server shut down gracefully")
			return nil
		case forceSig := <-forceShutdown:
			appLogger.WithField("signal", forceSig.String()).Warn("Force shutdown signal received - terminating immediately")

			cancel()

			select {
			case err := <-shutdownDone:
				if err != nil {
					appLogger.WithField("error", err.Error()).Error("Error during forced shutdown")
				}
			case <-time.After(forceShutdownDelay):
				appLogger.Warn("Forced shutdown timeout - exiting immediately")
			}

			return fmt.Errorf("forced shutdown")
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel)
	appLogger.Info(fmt.Sprintf("Starting email composer on %s:%d", cfg.Server.Host, cfg.Server.Port))

	if err := runServer(cfg, appLogger); err != nil {
		osExit(1)
	}
}
