package finance

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto financeiro
var (
	// Erros de serviços externos
	ErrERPUnavailable = errors.New("error fetching receivables and payables from ERP")
)

// FinanceError é um erro com contexto adicional para o resumo financeiro
type FinanceError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *FinanceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *FinanceError) Unwrap() error {
	return e.Err
}

func NewFinanceError(err error, code string, details string) *FinanceError {
	return &FinanceError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
