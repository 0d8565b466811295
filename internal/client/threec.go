package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cleberrangel/total-reports-api/internal/logger"
	"github.com/cleberrangel/total-reports-api/internal/metrics"
	"github.com/cleberrangel/total-reports-api/internal/model"
)

const (
	// PageSize tamanho da página pedida ao 3C Plus
	PageSize = 100

	userAgent = "PostmanRuntime/7.36.0"
)

// Upstream é o que o pipeline de relatório precisa do 3C Plus
type Upstream interface {
	Impersonate(ctx context.Context, companyID string) (model.ImpersonationCredential, error)
	FetchAllCalls(ctx context.Context, cred model.ImpersonationCredential, filter model.CallFilter) ([]model.CallRecord, error)
}

// Client é o cliente HTTP para a API do 3C Plus
type Client struct {
	baseURL          string
	impersonateToken string
	timeout          time.Duration
	httpClient       *http.Client
}

// NewClient cria um novo cliente 3C Plus.
// timeout limita cada chamada individualmente; zero desativa o limite.
func NewClient(baseURL, impersonateToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:          strings.TrimRight(baseURL, "/"),
		impersonateToken: impersonateToken,
		timeout:          timeout,
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
}

// Impersonate troca o token de impersonate por um token da empresa
func (c *Client) Impersonate(ctx context.Context, companyID string) (model.ImpersonationCredential, error) {
	log := logger.Get(ctx)

	query := url.Values{}
	query.Set("api_token", c.impersonateToken)
	endpoint := fmt.Sprintf("%s/companies/%s/impersonate?%s", c.baseURL, url.PathEscape(companyID), query.Encode())

	log.Debug().
		Str("company_id", companyID).
		Str("impersonate_token", logger.Mask(c.impersonateToken)).
		Msg("Solicitando impersonate")

	status, body, err := c.do(ctx, model.OpImpersonate, http.MethodPost, endpoint)
	if err != nil {
		return model.ImpersonationCredential{}, err
	}

	if !isSuccess(status) {
		log.Error().
			Str("company_id", companyID).
			Int("status", status).
			Str("body", string(body)).
			Msg("Impersonate recusado")
		return model.ImpersonationCredential{}, &model.UpstreamError{
			Op:         model.OpImpersonate,
			StatusCode: status,
			Body:       string(body),
		}
	}

	token, err := parseCredential(body)
	if err != nil {
		log.Error().Err(err).Str("company_id", companyID).Msg("Resposta de impersonate inválida")
		return model.ImpersonationCredential{}, err
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:    logger.AuditActionImpersonate,
		CompanyID: companyID,
		Resource:  model.OpImpersonate,
		Success:   true,
	})
	log.Info().
		Str("company_id", companyID).
		Str("token", logger.Mask(token)).
		Msg("Impersonate concluído")

	return model.ImpersonationCredential{Value: token, CompanyID: companyID}, nil
}

// ListCallsPage busca uma única página da listagem de chamadas
func (c *Client) ListCallsPage(ctx context.Context, cred model.ImpersonationCredential, filter model.CallFilter, page int) (*model.CallsPage, error) {
	endpoint := buildCallsURL(c.baseURL, cred.Value, filter, page)

	status, body, err := c.do(ctx, model.OpListCalls, http.MethodGet, endpoint)
	if err != nil {
		return nil, fmt.Errorf("página %d: %w", page, err)
	}

	if !isSuccess(status) {
		return nil, &model.UpstreamError{
			Op:         model.OpListCalls,
			StatusCode: status,
			Body:       string(body),
			Page:       page,
		}
	}

	return decodeCallsPage(body)
}

// FetchAllCalls percorre todas as páginas da listagem, em ordem, até page > total_pages.
// total_pages é relido a cada página. Qualquer falha aborta sem resultado parcial.
func (c *Client) FetchAllCalls(ctx context.Context, cred model.ImpersonationCredential, filter model.CallFilter) ([]model.CallRecord, error) {
	log := logger.Get(ctx)

	calls := make([]model.CallRecord, 0)
	cursor := model.PageCursor{Page: 1, TotalPages: 1}

	for {
		page, err := c.ListCallsPage(ctx, cred, filter, cursor.Page)
		if err != nil {
			log.Error().
				Int("page", cursor.Page).
				Int("collected", len(calls)).
				Err(err).
				Msg("Falha na listagem de chamadas")
			return nil, err
		}

		metrics.Get().IncrementPagesFetched()
		calls = append(calls, page.Calls...)
		cursor.TotalPages = page.TotalPages

		log.Info().
			Int("page", cursor.Page).
			Int("total_pages", cursor.TotalPages).
			Int("calls", len(page.Calls)).
			Int("total", len(calls)).
			Msg("Chamadas coletadas")

		if !cursor.Next() {
			break
		}
	}

	log.Info().
		Int("calls", len(calls)).
		Int("pages", cursor.Page-1).
		Msg("Listagem concluída")
	return calls, nil
}

// buildCallsURL constrói a URL da listagem de chamadas
func buildCallsURL(baseURL, token string, filter model.CallFilter, page int) string {
	query := url.Values{}
	query.Set("start_date", filter.StartDate)
	query.Set("end_date", filter.EndDate)
	query.Set("call_mode", "all")
	if filter.Status != "" {
		query.Set("statuses", filter.Status)
	}
	query.Set("type", "all")
	query.Set("simple_paginate", "true")
	query.Set("order_by_desc", "call_date")
	query.Set("include", "campaign_rel")
	query.Set("api_token", token)
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(PageSize))

	return baseURL + "/calls?" + query.Encode()
}

// do executa uma requisição e devolve status e corpo completo
func (c *Client) do(ctx context.Context, op, method, endpoint string) (int, []byte, error) {
	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(callCtx, method, endpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("criar request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "*/*")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.Get().TrackUpstream(op, false, time.Since(start).Milliseconds())
		if ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return 0, nil, fmt.Errorf("%s: %w (%s)", op, model.ErrTimeout, c.timeout)
		}
		return 0, nil, fmt.Errorf("%s: executar request: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.Get().TrackUpstream(op, err == nil && isSuccess(resp.StatusCode), time.Since(start).Milliseconds())
	if err != nil {
		if ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return 0, nil, fmt.Errorf("%s: %w (%s)", op, model.ErrTimeout, c.timeout)
		}
		return 0, nil, fmt.Errorf("%s: ler resposta: %w", op, err)
	}

	return resp.StatusCode, body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// parseCredential extrai data.api_token da resposta de impersonate
func parseCredential(body []byte) (string, error) {
	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", &model.ParseError{Op: model.OpImpersonate, Body: string(body), Err: err}
	}

	root, _ := raw.(map[string]interface{})
	data, _ := root["data"].(map[string]interface{})
	token, _ := data["api_token"].(string)
	if token == "" {
		return "", model.ErrMissingCredential
	}
	return token, nil
}

// decodeCallsPage interpreta uma página da listagem.
// data ausente ou que não seja lista vira página vazia; total_pages ausente ou inválido vira 1.
func decodeCallsPage(body []byte) (*model.CallsPage, error) {
	var probe interface{}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, &model.ParseError{Op: model.OpListCalls, Body: string(body), Err: err}
	}

	page := &model.CallsPage{Calls: []model.CallRecord{}, TotalPages: 1}

	var root map[string]json.RawMessage
	if json.Unmarshal(body, &root) != nil {
		return page, nil
	}

	var calls []model.CallRecord
	if json.Unmarshal(root["data"], &calls) == nil && calls != nil {
		page.Calls = calls
	}

	var meta map[string]json.RawMessage
	if json.Unmarshal(root["meta"], &meta) != nil {
		return page, nil
	}
	var pagination map[string]json.RawMessage
	if json.Unmarshal(meta["pagination"], &pagination) != nil {
		return page, nil
	}
	page.TotalPages = parseTotalPages(pagination["total_pages"])

	return page, nil
}

// parseTotalPages aceita número ou string numérica; qualquer outra coisa, ou valor < 1, vira 1
func parseTotalPages(raw json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 1
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return 1
		}
	}

	if math.IsNaN(f) || f < 1 {
		return 1
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(f))
}
