package model

import (
	"errors"
	"fmt"
)

var (
	// ErrMethodNotAllowed indica método HTTP diferente de GET
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrUnauthorized indica api_token ausente ou diferente do token interno
	ErrUnauthorized = errors.New("invalid or unauthorized token")

	// ErrInvalidRequest indica parâmetros obrigatórios ausentes na query
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUpstreamExchange indica falha HTTP no impersonate do 3C Plus
	ErrUpstreamExchange = errors.New("impersonate failed")

	// ErrUpstreamFetch indica falha HTTP na listagem de chamadas
	ErrUpstreamFetch = errors.New("calls listing failed")

	// ErrParse indica corpo de resposta que não é JSON válido
	ErrParse = errors.New("invalid JSON response")

	// ErrMissingCredential indica impersonate sem data.api_token
	ErrMissingCredential = errors.New("impersonation credential not returned")

	// ErrTimeout indica que a chamada ao 3C Plus excedeu o timeout configurado
	ErrTimeout = errors.New("upstream request timed out")
)

// Operações do 3C Plus, usadas para identificar a origem de um erro
const (
	OpImpersonate = "impersonate"
	OpListCalls   = "calls"
)

// UpstreamError carrega status e corpo de uma resposta não-2xx do 3C Plus
type UpstreamError struct {
	Op         string
	StatusCode int
	Body       string
	Page       int
}

func (e *UpstreamError) Error() string {
	if e.Op == OpListCalls {
		return fmt.Sprintf("%s: page %d: status %d - %s", e.kind(), e.Page, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: status %d - %s", e.kind(), e.StatusCode, e.Body)
}

// Redacted descreve o erro sem o corpo devolvido pelo 3C Plus
func (e *UpstreamError) Redacted() string {
	if e.Op == OpListCalls {
		return fmt.Sprintf("%s: page %d: status %d", e.kind(), e.Page, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d", e.kind(), e.StatusCode)
}

func (e *UpstreamError) Is(target error) bool {
	return target == e.kind()
}

func (e *UpstreamError) kind() error {
	if e.Op == OpListCalls {
		return ErrUpstreamFetch
	}
	return ErrUpstreamExchange
}

// ParseError indica que o corpo devolvido não pôde ser interpretado como JSON
type ParseError struct {
	Op   string
	Body string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %v (body: %s)", e.Op, ErrParse, e.Err, e.Body)
}

// Redacted descreve o erro sem o corpo bruto
func (e *ParseError) Redacted() string {
	return fmt.Sprintf("%s: %s", e.Op, ErrParse)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Redactor é implementado por erros que carregam conteúdo bruto do 3C Plus
type Redactor interface {
	Redacted() string
}
