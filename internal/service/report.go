package service

import (
	"context"
	"time"

	"github.com/cleberrangel/total-reports-api/internal/client"
	"github.com/cleberrangel/total-reports-api/internal/logger"
	"github.com/cleberrangel/total-reports-api/internal/metrics"
	"github.com/cleberrangel/total-reports-api/internal/model"
)

// ReportService orquestra o relatório de total de ligações:
// impersonate -> paginação -> agregação
type ReportService struct {
	upstream client.Upstream
}

// NewReportService cria um novo serviço de relatórios
func NewReportService(upstream client.Upstream) *ReportService {
	return &ReportService{upstream: upstream}
}

// Generate executa o pipeline para uma requisição já validada.
// Um novo token de impersonate é obtido a cada chamada e descartado no fim.
func (s *ReportService) Generate(ctx context.Context, req model.ReportRequest) (*model.ReportResult, error) {
	start := time.Now()
	ctx = logger.WithCompanyID(ctx, req.CompanyID)
	log := logger.Get(ctx)

	log.Info().
		Str("start_date", req.StartDate).
		Str("end_date", req.EndDate).
		Str("status", req.Status).
		Msg("Iniciando relatório de ligações")

	cred, err := s.upstream.Impersonate(ctx, req.CompanyID)
	if err != nil {
		return nil, s.fail(ctx, req, start, err)
	}

	calls, err := s.upstream.FetchAllCalls(ctx, cred, req.Filter())
	if err != nil {
		return nil, s.fail(ctx, req, start, err)
	}

	result := Aggregate(calls, req)

	metrics.Get().IncrementReportGenerated(true, result.TotalCalls)
	logger.AuditReport(ctx, req.CompanyID, result.TotalCalls, time.Since(start).Milliseconds(), nil)
	log.Info().
		Int("total_ligacoes", result.TotalCalls).
		Dur("duration", time.Since(start)).
		Msg("Relatório concluído")

	return result, nil
}

func (s *ReportService) fail(ctx context.Context, req model.ReportRequest, start time.Time, err error) error {
	metrics.Get().IncrementReportGenerated(false, 0)
	logger.AuditReport(ctx, req.CompanyID, 0, time.Since(start).Milliseconds(), err)
	logger.Get(ctx).Error().Err(err).Msg("Erro no processamento do relatório")
	return err
}

// Aggregate conta as chamadas coletadas, sem deduplicar, e monta o resultado
func Aggregate(calls []model.CallRecord, req model.ReportRequest) *model.ReportResult {
	status := req.Status
	if status == "" {
		status = model.StatusAll
	}

	return &model.ReportResult{
		Company: req.CompanyID,
		Period: model.Period{
			From: req.StartDate,
			To:   req.EndDate,
		},
		Status:     status,
		TotalCalls: len(calls),
	}
}
