package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/cleberrangel/total-reports-api/internal/cli"
	"github.com/cleberrangel/total-reports-api/internal/client"
	"github.com/cleberrangel/total-reports-api/internal/config"
	"github.com/cleberrangel/total-reports-api/internal/logger"
	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cli.NewRootCommand(func() (client.Upstream, error) {
		// API_TOKEN_INTERNO não é exigido no terminal
		cfg, err := config.LoadUpstream()
		if err != nil {
			return nil, err
		}

		// Logs vão para stderr para não misturar com a saída do comando
		logger.InitWithWriter(cfg.LogLevel, cfg.LogJSON, os.Stderr)
		return client.NewClient(cfg.BaseURL, cfg.ImpersonateToken, cfg.UpstreamTimeout), nil
	})

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.Red("Error: %v", err)
		stop()
		os.Exit(1)
	}
}
