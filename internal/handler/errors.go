package handler

import (
	"errors"
	"net/http"

	"github.com/cleberrangel/total-reports-api/internal/model"
	"github.com/gin-gonic/gin"
)

const errReportProcessing = "report processing error"

// ErrorMapper traduz erros internos em status HTTP e corpo de resposta.
// É o único ponto onde detalhes de falhas do 3C Plus chegam ao cliente.
type ErrorMapper struct {
	// ExposeUpstreamDetail inclui o corpo bruto devolvido pelo 3C Plus em detail
	ExposeUpstreamDetail bool
}

// Map converte err em status e corpo
func (m ErrorMapper) Map(err error) (int, model.ErrorResponse) {
	switch {
	case errors.Is(err, model.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, model.ErrorResponse{Error: model.ErrMethodNotAllowed.Error()}
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized, model.ErrorResponse{Error: model.ErrUnauthorized.Error()}
	case errors.Is(err, model.ErrInvalidRequest):
		return http.StatusBadRequest, model.ErrorResponse{Error: model.ErrInvalidRequest.Error(), Detail: err.Error()}
	}

	return http.StatusInternalServerError, model.ErrorResponse{
		Error:  errReportProcessing,
		Detail: m.detail(err),
	}
}

// Reject escreve a resposta de erro e aborta a cadeia do gin
func (m ErrorMapper) Reject(c *gin.Context, err error) {
	status, body := m.Map(err)
	c.AbortWithStatusJSON(status, body)
}

func (m ErrorMapper) detail(err error) string {
	if m.ExposeUpstreamDetail {
		return err.Error()
	}

	var redactor model.Redactor
	var upErr *model.UpstreamError
	var parseErr *model.ParseError
	switch {
	case errors.As(err, &upErr):
		redactor = upErr
	case errors.As(err, &parseErr):
		redactor = parseErr
	default:
		return err.Error()
	}
	return redactor.Redacted()
}
