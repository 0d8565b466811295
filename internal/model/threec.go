package model

import "encoding/json"

// ImpersonationCredential é o token de uma empresa obtido via impersonate.
// Vale apenas durante o processamento de uma requisição.
type ImpersonationCredential struct {
	Value     string
	CompanyID string
}

// CallFilter contém os filtros da listagem de chamadas
type CallFilter struct {
	StartDate string
	EndDate   string
	Status    string // vazio = todos os status
}

// CallRecord é uma chamada devolvida pelo 3C Plus. Apenas a contagem importa.
type CallRecord = json.RawMessage

// PageCursor controla a paginação da listagem
type PageCursor struct {
	Page       int
	TotalPages int
}

// Next avança para a próxima página e informa se ela ainda deve ser buscada
func (c *PageCursor) Next() bool {
	c.Page++
	return c.Page <= c.TotalPages
}

// CallsPage é uma página já decodificada da listagem de chamadas
type CallsPage struct {
	Calls      []CallRecord
	TotalPages int
}
