package handler

import (
	"github.com/cleberrangel/total-reports-api/internal/client"
	"github.com/cleberrangel/total-reports-api/internal/config"
	"github.com/cleberrangel/total-reports-api/internal/middleware"
	"github.com/cleberrangel/total-reports-api/internal/service"
	"github.com/gin-gonic/gin"
)

// ReportRoute é a rota pública do relatório
const ReportRoute = "/api/total-reports"

// NewRouter monta o engine gin com middlewares, gate e rotas.
// upstream normalmente é um *client.Client apontando para cfg.BaseURL.
func NewRouter(cfg *config.Config, upstream client.Upstream, version string) *gin.Engine {
	mapper := ErrorMapper{ExposeUpstreamDetail: cfg.ExposeUpstreamDetail}
	reportHandler := NewReportHandler(service.NewReportService(upstream), mapper)
	healthHandler := NewHealthHandler(version)

	r := gin.New()
	r.Use(middleware.RequestID()) // Request ID + logging estruturado
	r.Use(middleware.MetricsMiddleware())
	r.Use(gin.Recovery())

	// Health check e métricas (públicos)
	r.GET("/health", healthHandler.LivenessCheck)
	r.GET("/health/ready", healthHandler.ReadinessCheck)
	r.GET("/metrics", healthHandler.GetMetrics)

	// Qualquer método chega ao gate, que responde 405 para não-GET
	r.Any(ReportRoute, middleware.ReportGate(middleware.AuthConfig{
		TokenAPI: cfg.TokenAPI,
		Reject:   mapper.Reject,
	}), reportHandler.TotalReports)

	return r
}
