package main

import (
	"context"
	"os"

	"kuroma-gateway/internal/config"
	"kuroma-gateway/internal/logging"

	"github.com/urfave/cli/v3"
)

func main() {
	envErr := config.LoadEnvFile(os.Getenv("KUROMA_ENV_FILE"))

	cfg := config.ClientFromEnv()
	logger := logging.NewLogger(nil, cfg.LogLevel)
	if envErr != nil {
		logger.Debug("env file not loaded, using system environment variables", "err", envErr)
	}

	runner := NewRunner(RunnerOpts{Config: cfg, Logger: logger})

	app := &cli.Command{
		Name:     "kuroma",
		Usage:    "Talk to a running Kuroma gateway from the terminal",
		Version:  cfg.AppVersion,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
