package aggregating

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
)

// WindowMonths retorna os meses (1..12) que compõem a janela da periodicidade para o mês âncora
func WindowMonths(p domain.Periodicity, anchorMonth int) []int {
	if anchorMonth < 1 || anchorMonth > 12 {
		return nil
	}

	switch p {
	case domain.PeriodicitySpecificMonth, domain.PeriodicityMonthly:
		return []int{anchorMonth}
	case domain.PeriodicityQuarterly:
		first := ((anchorMonth-1)/3)*3 + 1
		return monthRange(first, first+2)
	case domain.PeriodicitySemiannual:
		if anchorMonth <= 6 {
			return monthRange(1, 6)
		}
		return monthRange(7, 12)
	case domain.PeriodicityAnnual:
		return monthRange(1, 12)
	default:
		return nil
	}
}

// Aggregate reduz a série mensal a um único inteiro.
// Mensal e mês específico devolvem o valor do mês âncora, sem buscar outros meses.
// Trimestral, semestral e anual fazem a média apenas dos meses da janela com valor > 0.
// Zero e ausência de dado são tratados da mesma forma.
func Aggregate(values map[int]float64, p domain.Periodicity, anchorMonth int) int {
	window := WindowMonths(p, anchorMonth)
	if len(window) == 0 {
		return 0
	}

	switch p {
	case domain.PeriodicitySpecificMonth, domain.PeriodicityMonthly:
		value, ok := values[anchorMonth]
		if !ok || !isFinite(value) {
			return 0
		}
		return roundToInt(decimal.NewFromFloat(value))
	}

	sum := decimal.Zero
	count := 0
	for _, month := range window {
		value, ok := values[month]
		if !ok || !isFinite(value) || value <= 0 {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(value))
		count++
	}

	if count == 0 {
		return 0
	}

	return roundToInt(sum.Div(decimal.NewFromInt(int64(count))))
}

// MonthsWithData lista os meses da janela que entram na média
func MonthsWithData(values map[int]float64, p domain.Periodicity, anchorMonth int) []int {
	months := make([]int, 0)
	for _, month := range WindowMonths(p, anchorMonth) {
		value, ok := values[month]
		if !ok || !isFinite(value) {
			continue
		}
		if p != domain.PeriodicitySpecificMonth && p != domain.PeriodicityMonthly && value <= 0 {
			continue
		}
		months = append(months, month)
	}
	return months
}

func roundToInt(d decimal.Decimal) int {
	return int(d.Round(0).IntPart())
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func monthRange(from, to int) []int {
	months := make([]int, 0, to-from+1)
	for m := from; m <= to; m++ {
		months = append(months, m)
	}
	return months
}
