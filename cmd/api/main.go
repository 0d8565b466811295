package main

import (
	stdlog "log"
	"os"

	"github.com/cleberrangel/total-reports-api/internal/client"
	"github.com/cleberrangel/total-reports-api/internal/config"
	"github.com/cleberrangel/total-reports-api/internal/handler"
	"github.com/cleberrangel/total-reports-api/internal/logger"
	"github.com/cleberrangel/total-reports-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

func main() {
	// Carrega configurações
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Erro ao carregar configurações: %v", err)
	}

	// Inicializa logger estruturado
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	logger.InitAudit()
	metrics.Init()

	log := logger.Global()
	log.Info().
		Str("version", Version).
		Str("port", cfg.Port).
		Str("base_url", cfg.BaseURL).
		Dur("upstream_timeout", cfg.UpstreamTimeout).
		Bool("expose_upstream_detail", cfg.ExposeUpstreamDetail).
		Str("log_level", cfg.LogLevel).
		Bool("log_json", cfg.LogJSON).
		Msg("Total Reports API iniciando")

	// Configura modo do Gin
	gin.SetMode(cfg.GinMode)

	threeC := client.NewClient(cfg.BaseURL, cfg.ImpersonateToken, cfg.UpstreamTimeout)
	r := handler.NewRouter(cfg, threeC, Version)

	// Inicia servidor
	port := cfg.Port
	log.Info().Str("port", port).Str("route", handler.ReportRoute).Msg("Servidor iniciando")

	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Erro ao iniciar servidor")
		os.Exit(1)
	}
}
