package domain

// StatusTotal soma os títulos de um mesmo status
type StatusTotal struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type FormattedTotals struct {
	Receivable string `json:"receivable"`
	Payable    string `json:"payable"`
	Balance    string `json:"balance"`
}

// FinancialSummary representa o resumo financeiro do período filtrado
type FinancialSummary struct {
	Criteria          FilterCriteria         `json:"criteria"`
	TotalReceivable   float64                `json:"total_receivable"`
	TotalPayable      float64                `json:"total_payable"`
	Balance           float64                `json:"balance"`
	ReceivableCount   int                    `json:"receivable_count"`
	PayableCount      int                    `json:"payable_count"`
	UndatedCount      int                    `json:"undated_count"`
	ReceivableStatus  map[string]StatusTotal `json:"receivable_status"`
	PayableStatus     map[string]StatusTotal `json:"payable_status"`
	Formatted         FormattedTotals        `json:"formatted"`
	PartialData       bool                   `json:"partial_data"`
	UnavailableSource []RecordCategory       `json:"unavailable_sources,omitempty"`
}
