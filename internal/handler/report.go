package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cleberrangel/total-reports-api/internal/logger"
	"github.com/cleberrangel/total-reports-api/internal/model"
	"github.com/cleberrangel/total-reports-api/internal/service"
	"github.com/gin-gonic/gin"
)

// FormatXLSX é o valor de format que devolve o relatório como planilha
const FormatXLSX = "xlsx"

// ReportHandler manipula requisições de relatório
type ReportHandler struct {
	reportService  *service.ReportService
	excelGenerator *service.ExcelGenerator
	errors         ErrorMapper
}

// NewReportHandler cria um novo handler de relatórios
func NewReportHandler(reportService *service.ReportService, errors ErrorMapper) *ReportHandler {
	return &ReportHandler{
		reportService:  reportService,
		excelGenerator: service.NewExcelGenerator(),
		errors:         errors,
	}
}

// TotalReports conta as ligações de uma empresa no período.
// Método e api_token já foram validados por middleware.ReportGate.
// @Summary      Total de ligações
// @Description  Faz impersonate da empresa no 3C Plus e soma todas as páginas de chamadas do período
// @Tags         reports
// @Produce      json
// @Param        company_id  query string true  "ID da empresa no 3C Plus"
// @Param        start_date  query string true  "Data inicial"
// @Param        end_date    query string true  "Data final"
// @Param        status      query string false "Filtro de status"
// @Param        api_token   query string true  "Token interno"
// @Param        format      query string false "xlsx para receber planilha"
// @Success      200 {object} model.ReportResult
// @Failure      400 {object} model.ErrorResponse
// @Failure      401 {object} model.ErrorResponse
// @Failure      405 {object} model.ErrorResponse
// @Failure      500 {object} model.ErrorResponse
// @Router       /api/total-reports [get]
func (h *ReportHandler) TotalReports(c *gin.Context) {
	var req model.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.errors.Reject(c, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err))
		return
	}

	if missing := missingParams(req); len(missing) > 0 {
		h.errors.Reject(c, fmt.Errorf("%w: missing %s", model.ErrInvalidRequest, strings.Join(missing, ", ")))
		return
	}

	result, err := h.reportService.Generate(c.Request.Context(), req)
	if err != nil {
		h.errors.Reject(c, err)
		return
	}

	if c.Query("format") == FormatXLSX {
		h.writeXLSX(c, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ReportHandler) writeXLSX(c *gin.Context, result *model.ReportResult) {
	buf, err := h.excelGenerator.Summary(result)
	if err != nil {
		logger.FromGin(c).Error().Err(err).Msg("Erro ao gerar planilha")
		h.errors.Reject(c, err)
		return
	}

	filename := fmt.Sprintf("total_ligacoes_%s_%s_%s.xlsx", result.Company, result.Period.From, result.Period.To)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("X-Total-Ligacoes", fmt.Sprintf("%d", result.TotalCalls))
	c.Data(http.StatusOK, service.XLSXContentType, buf.Bytes())
}

func missingParams(req model.ReportRequest) []string {
	var missing []string
	if req.CompanyID == "" {
		missing = append(missing, "company_id")
	}
	if req.StartDate == "" {
		missing = append(missing, "start_date")
	}
	if req.EndDate == "" {
		missing = append(missing, "end_date")
	}
	return missing
}
