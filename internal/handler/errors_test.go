package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/cleberrangel/total-reports-api/internal/model"
)

func TestErrorMapper_Map(t *testing.T) {
	upErr := &model.UpstreamError{Op: model.OpImpersonate, StatusCode: 500, Body: "boom"}
	pageErr := &model.UpstreamError{Op: model.OpListCalls, StatusCode: 502, Body: "bad gateway", Page: 3}
	parseErr := &model.ParseError{Op: model.OpListCalls, Body: "<html>", Err: errors.New("invalid character '<'")}

	tests := []struct {
		name       string
		expose     bool
		err        error
		wantStatus int
		wantError  string
		wantDetail string
	}{
		{"metodo", true, model.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "method not allowed", ""},
		{"token", true, model.ErrUnauthorized, http.StatusUnauthorized, "invalid or unauthorized token", ""},
		{"parametros", true, fmt.Errorf("%w: missing company_id", model.ErrInvalidRequest), http.StatusBadRequest, "invalid request", "invalid request: missing company_id"},
		{"impersonate exposto", true, upErr, http.StatusInternalServerError, errReportProcessing, "impersonate failed: status 500 - boom"},
		{"impersonate redigido", false, upErr, http.StatusInternalServerError, errReportProcessing, "impersonate failed: status 500"},
		{"pagina exposta", true, pageErr, http.StatusInternalServerError, errReportProcessing, "calls listing failed: page 3: status 502 - bad gateway"},
		{"pagina redigida", false, pageErr, http.StatusInternalServerError, errReportProcessing, "calls listing failed: page 3: status 502"},
		{"parse redigido", false, parseErr, http.StatusInternalServerError, errReportProcessing, "calls: invalid JSON response"},
		{"credencial", false, model.ErrMissingCredential, http.StatusInternalServerError, errReportProcessing, "impersonation credential not returned"},
		{"timeout", true, model.ErrTimeout, http.StatusInternalServerError, errReportProcessing, "upstream request timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := ErrorMapper{ExposeUpstreamDetail: tt.expose}.Map(tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if body.Error != tt.wantError {
				t.Errorf("error = %q, want %q", body.Error, tt.wantError)
			}
			if body.Detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", body.Detail, tt.wantDetail)
			}
		})
	}
}

func TestErrorMapper_ParseExposedKeepsBody(t *testing.T) {
	parseErr := &model.ParseError{Op: model.OpImpersonate, Body: "not json", Err: errors.New("invalid character 'o'")}

	_, body := ErrorMapper{ExposeUpstreamDetail: true}.Map(parseErr)
	if !strings.Contains(body.Detail, "not json") {
		t.Errorf("detail should carry raw body, got %q", body.Detail)
	}
	if !strings.Contains(body.Detail, "invalid JSON response") {
		t.Errorf("detail should name the parse failure, got %q", body.Detail)
	}
}

func TestErrorMapper_WrappedUpstreamRedacted(t *testing.T) {
	wrapped := fmt.Errorf("relatório: %w", &model.UpstreamError{Op: model.OpImpersonate, StatusCode: 403, Body: "segredo"})

	status, body := ErrorMapper{}.Map(wrapped)
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d", status)
	}
	if strings.Contains(body.Detail, "segredo") {
		t.Errorf("upstream body leaked: %q", body.Detail)
	}
}
