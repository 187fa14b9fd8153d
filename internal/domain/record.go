package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/vfg2006/portal-indicadores-api/pkg/utils"
)

// Aliases aceitos para cada campo dos títulos do ERP, em ordem de prioridade
var (
	AmountFields             = []string{"valor_documento", "valor"}
	DateFields               = []string{"data_emissao", "data_vencimento", "data_previsao", "data"}
	StatusFields             = []string{"status_titulo", "status"}
	ProjectCodeFields        = []string{"codigo_projeto", "projeto", "codigo"}
	ProjectDescriptionFields = []string{"descricao_projeto", "projeto_desc", "nome_projeto", "nome"}
)

// FinancialRecord é um título (a receber ou a pagar) como veio do ERP.
// Nenhum campo é obrigatório.
type FinancialRecord map[string]any

// DateField retorna a primeira data preenchida, apenas se ela for texto
func (r FinancialRecord) DateField() (string, bool) {
	value, found := RawRecord(r).First(DateFields)
	if !found {
		return "", false
	}

	date, ok := value.(string)
	return date, ok
}

// YearMonth extrai e interpreta a data do registro
func (r FinancialRecord) YearMonth() (YearMonth, bool) {
	date, ok := r.DateField()
	if !ok {
		return YearMonth{}, false
	}

	return ParseYearMonth(date)
}

func (r FinancialRecord) Amount() float64 {
	value, _ := RawRecord(r).First(AmountFields)
	return utils.ToNumber(value)
}

func (r FinancialRecord) Status() string {
	return RawRecord(r).Text(StatusFields)
}

func (r FinancialRecord) ProjectCode() string {
	return RawRecord(r).Text(ProjectCodeFields)
}

func (r FinancialRecord) ProjectDescription() string {
	return RawRecord(r).Text(ProjectDescriptionFields)
}

// RawRecord é um objeto JSON de formato livre vindo de uma integração
type RawRecord map[string]any

// Text devolve o primeiro alias preenchido como texto
func (r RawRecord) Text(fields []string) string {
	value, found := r.First(fields)
	if !found {
		return ""
	}

	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprint(value)
}

// First devolve o primeiro alias preenchido
func (r RawRecord) First(fields []string) (any, bool) {
	for _, field := range fields {
		if value, ok := r[field]; ok && IsTruthy(value) {
			return value, true
		}
	}

	return nil, false
}

// IsTruthy considera vazios: nil, "", false, zero e NaN
func IsTruthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0 && !math.IsNaN(v)
	case float32:
		return v != 0 && !math.IsNaN(float64(v))
	case int:
		return v != 0
	case int64:
		return v != 0
	case int32:
		return v != 0
	default:
		return !strings.EqualFold(fmt.Sprint(v), "0")
	}
}
