package aggregating

import (
	"errors"
	"fmt"
)

// Erros específicos para a agregação de indicadores
var (
	// Erros de validação
	ErrInvalidPeriodicity = errors.New("invalid periodicity")
	ErrInvalidMonth       = errors.New("month must be between 1 and 12")
	ErrInvalidYear        = errors.New("invalid year")
	ErrMonthRequired      = errors.New("month is required for specific_month")

	// Erros de sessão
	ErrSuperseded        = errors.New("load superseded by a newer request")
	ErrGenerateSessionID = errors.New("error generating session ID")
)

// IndicatorError é um erro com contexto adicional para a agregação
type IndicatorError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *IndicatorError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *IndicatorError) Unwrap() error {
	return e.Err
}

func NewIndicatorError(err error, code string, details string) *IndicatorError {
	return &IndicatorError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
