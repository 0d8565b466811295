package logger

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// AuditAction represents the type of action being audited
type AuditAction string

const (
	// Acesso ao endpoint de relatório
	AuditActionAuthRejected     AuditAction = "AUTH_REJECTED"
	AuditActionMethodNotAllowed AuditAction = "METHOD_NOT_ALLOWED"

	// Pipeline do relatório
	AuditActionImpersonate    AuditAction = "IMPERSONATE"
	AuditActionReportGenerate AuditAction = "REPORT_GENERATE"
	AuditActionReportFailed   AuditAction = "REPORT_FAILED"
)

// AuditEvent represents an audit log entry
type AuditEvent struct {
	Action     AuditAction
	CompanyID  string
	Resource   string
	Details    map[string]interface{}
	ClientIP   string
	RequestID  string
	Success    bool
	Error      string
	Duration   int64 // ms
	Method     string
	Path       string
	StatusCode int
}

var auditLogger = zerolog.Nop()

// InitAudit initializes the audit logger
func InitAudit() {
	auditLogger = globalLogger.With().Str("log_type", "audit").Logger()
}

// Audit logs an audit event
func Audit(ctx context.Context, event AuditEvent) {
	if event.RequestID == "" {
		event.RequestID = GetRequestID(ctx)
	}
	if event.CompanyID == "" {
		event.CompanyID = GetCompanyID(ctx)
	}

	logEvent := auditLogger.Info()
	if !event.Success {
		logEvent = auditLogger.Warn()
	}

	logEvent.
		Str("action", string(event.Action)).
		Str("company_id", event.CompanyID).
		Str("resource", event.Resource).
		Str("client_ip", event.ClientIP).
		Str("request_id", event.RequestID).
		Bool("success", event.Success).
		Time("timestamp", time.Now().UTC())

	if event.Error != "" {
		logEvent.Str("error", event.Error)
	}

	if event.Duration > 0 {
		logEvent.Int64("duration_ms", event.Duration)
	}

	if event.Method != "" {
		logEvent.Str("method", event.Method)
	}

	if event.Path != "" {
		logEvent.Str("path", event.Path)
	}

	if event.StatusCode > 0 {
		logEvent.Int("status_code", event.StatusCode)
	}

	if len(event.Details) > 0 {
		logEvent.Interface("details", event.Details)
	}

	logEvent.Msg("Audit event")
}

// AuditRejection registra uma requisição barrada antes do pipeline
func AuditRejection(ctx context.Context, action AuditAction, method, path, clientIP string, statusCode int) {
	Audit(ctx, AuditEvent{
		Action:     action,
		Resource:   "total-reports",
		Method:     method,
		Path:       path,
		ClientIP:   clientIP,
		StatusCode: statusCode,
		Success:    false,
	})
}

// AuditReport registra o resultado de um relatório
func AuditReport(ctx context.Context, companyID string, total int, duration int64, err error) {
	event := AuditEvent{
		Action:    AuditActionReportGenerate,
		CompanyID: companyID,
		Resource:  "total-reports",
		Duration:  duration,
		Success:   err == nil,
	}
	if err != nil {
		event.Action = AuditActionReportFailed
		event.Error = err.Error()
	} else {
		event.Details = map[string]interface{}{"total_ligacoes": total}
	}
	Audit(ctx, event)
}
