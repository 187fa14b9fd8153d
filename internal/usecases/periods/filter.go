package periods

import (
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
)

// Filter mantém os registros cujo ano/mês batem com o critério.
// Registros sem data ou com data inválida nunca entram no resultado.
func Filter(records []domain.FinancialRecord, criteria domain.FilterCriteria) []domain.FinancialRecord {
	filtered := make([]domain.FinancialRecord, 0, len(records))

	for _, record := range records {
		ym, ok := record.YearMonth()
		if !ok {
			continue
		}

		if criteria.Matches(ym) {
			filtered = append(filtered, record)
		}
	}

	return filtered
}

// CountUndated conta os registros que ficam de fora de qualquer período
func CountUndated(records []domain.FinancialRecord) int {
	count := 0
	for _, record := range records {
		if _, ok := record.YearMonth(); !ok {
			count++
		}
	}
	return count
}
