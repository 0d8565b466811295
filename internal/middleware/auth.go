package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/cleberrangel/total-reports-api/internal/logger"
	"github.com/cleberrangel/total-reports-api/internal/metrics"
	"github.com/cleberrangel/total-reports-api/internal/model"
	"github.com/gin-gonic/gin"
)

// RejectFunc escreve a resposta de uma requisição barrada e aborta a cadeia
type RejectFunc func(c *gin.Context, err error)

// AuthConfig contém a configuração do middleware de autenticação
type AuthConfig struct {
	TokenAPI string
	Reject   RejectFunc
}

// ValidateRequest aceita apenas GET com api_token igual ao token interno.
// Não faz I/O; roda antes de qualquer chamada ao 3C Plus.
func ValidateRequest(method, token, secret string) error {
	if method != http.MethodGet {
		return model.ErrMethodNotAllowed
	}

	if secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
		return model.ErrUnauthorized
	}

	return nil
}

// ReportGate valida método e api_token da query antes do handler de relatório
func ReportGate(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := ValidateRequest(c.Request.Method, c.Query("api_token"), cfg.TokenAPI)
		if err == nil {
			c.Next()
			return
		}

		action := logger.AuditActionAuthRejected
		if errors.Is(err, model.ErrMethodNotAllowed) {
			action = logger.AuditActionMethodNotAllowed
			metrics.Get().IncrementMethodRejection()
		} else {
			metrics.Get().IncrementAuthRejection()
		}

		cfg.Reject(c, err)
		if !c.IsAborted() {
			c.Abort()
		}

		logger.AuditRejection(c.Request.Context(), action, c.Request.Method, c.Request.URL.Path, c.ClientIP(), c.Writer.Status())
	}
}
