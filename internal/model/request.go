package model

// StatusAll é o valor ecoado quando nenhum filtro de status é informado
const StatusAll = "todos"

// ReportRequest representa os parâmetros de query de uma requisição de relatório.
// É construído uma vez por requisição e não é alterado depois.
type ReportRequest struct {
	CompanyID string `form:"company_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Status    string `form:"status"`
	APIToken  string `form:"api_token"`
}

// Filter retorna os filtros repassados à listagem de chamadas
func (r ReportRequest) Filter() CallFilter {
	return CallFilter{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Status:    r.Status,
	}
}

// Period representa o intervalo de datas do relatório
type Period struct {
	From string `json:"de"`
	To   string `json:"ate"`
}

// ReportResult é o payload de sucesso do relatório
type ReportResult struct {
	Company    string `json:"empresa"`
	Period     Period `json:"periodo"`
	Status     string `json:"status"`
	TotalCalls int    `json:"total_ligacoes"`
}

// ErrorResponse representa uma resposta de erro
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
