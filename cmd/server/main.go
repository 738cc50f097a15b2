package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kuroma-gateway/internal/adapter/api"
	"kuroma-gateway/internal/adapter/client"
	"kuroma-gateway/internal/adapter/store"
	"kuroma-gateway/internal/config"
	"kuroma-gateway/internal/logging"
	"kuroma-gateway/internal/usecase"
)

func main() {
	envErr := config.LoadEnvFile(os.Getenv("KUROMA_ENV_FILE"))

	cfg, err := config.FromEnv()
	if err != nil {
		logging.NewLogger(nil, "info").Fatal("invalid configuration", "err", err)
	}
	logger := logging.NewLogger(nil, cfg.LogLevel)
	if envErr != nil {
		logger.Warn("env file not found, using system environment variables", "err", envErr)
	}
	if cfg.Intent.URL == "" {
		logger.Warn("KUROMA_INTENT_API_URL is empty; /api/intent will answer 500")
	}

	// The intent call is bounded by cfg.Intent.Timeout through its context.
	intentClient := client.NewIntentClient(cfg.Intent, &http.Client{})

	waitlistStore, err := store.Open(cfg.Waitlist, nil)
	if err != nil {
		logger.Fatal("failed to open waitlist store", "driver", cfg.Waitlist.Driver, "err", err)
	}
	defer waitlistStore.Close()
	if u, ok := waitlistStore.(store.Unconfigured); ok {
		logger.Warn("waitlist store misconfigured; signups will be refused", "driver", cfg.Waitlist.Driver, "reason", u.Reason)
	}

	// Inject the adapters into the use cases
	proxy := usecase.NewIntentProxy(intentClient, logger)
	waitlist := usecase.NewWaitlist(waitlistStore, logger)

	app := api.NewApp(cfg)
	api.SetupRouter(app, cfg, api.NewIntentHandler(proxy), api.NewWaitlistHandler(waitlist))

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Kuroma gateway running", "port", cfg.Port, "intent_url", cfg.Intent.URL, "waitlist", cfg.Waitlist.Driver)
		serverErr <- app.Listen(":" + cfg.Port)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal("server error", "err", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown error", "err", err)
		}
	}
}
