package domain

import (
	"fmt"
	"strings"

	"github.com/vfg2006/portal-indicadores-api/pkg/utils"
)

var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

var monthAbbreviations = [12]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// MonthName retorna o nome completo do mês (1..12) ou vazio
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// PeriodLabel monta o rótulo curto exibido nos filtros (ex: "Mar/2025")
func PeriodLabel(year, month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d", year)
	}
	return fmt.Sprintf("%s/%d", monthAbbreviations[month-1], year)
}

type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Key no formato YYYY-MM
func (ym YearMonth) Key() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// ParseYearMonth interpreta uma data dd/mm/yyyy
func ParseYearMonth(value string) (YearMonth, bool) {
	year, month, ok := utils.ParseBrazilianDate(value)
	if !ok {
		return YearMonth{}, false
	}

	return YearMonth{Year: year, Month: month}, true
}

type RecordCategory string

const (
	CategoryReceivable RecordCategory = "receivable"
	CategoryPayable    RecordCategory = "payable"
)

// TaggedRecords é uma coleção de registros de uma mesma categoria
type TaggedRecords struct {
	Category RecordCategory
	Records  []FinancialRecord
}

// Period é um bucket ano/mês com a contagem de registros por categoria
type Period struct {
	Year            int                    `json:"year"`
	Month           int                    `json:"month"`
	Key             string                 `json:"key"`   // YYYY-MM
	Label           string                 `json:"label"` // Mar/2025
	CountReceivable int                    `json:"count_receivable"`
	CountPayable    int                    `json:"count_payable"`
	Counts          map[RecordCategory]int `json:"counts"`
	TotalRecords    int                    `json:"total_records"`
}

type MonthOption struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// DefaultPeriod sempre começa pelo ano inteiro, Month é nil
type DefaultPeriod struct {
	Year  int  `json:"year"`
	Month *int `json:"month"`
}

// PeriodCatalog representa os períodos que de fato possuem dados
type PeriodCatalog struct {
	Years         []int         `json:"years"`   // desc
	Months        []MonthOption `json:"months"`  // asc
	Periods       []Period      `json:"periods"` // ano desc, mês desc
	DefaultPeriod DefaultPeriod `json:"default_period"`
}

// FilterCriteria é imutável: os métodos With* devolvem uma cópia alterada
type FilterCriteria struct {
	Year  *int    `json:"year,omitempty"`
	Month *int    `json:"month,omitempty"`
	Area  *string `json:"area,omitempty"`
}

func (c FilterCriteria) WithYear(year *int) FilterCriteria {
	c.Year = copyInt(year)
	return c
}

func (c FilterCriteria) WithMonth(month *int) FilterCriteria {
	c.Month = copyInt(month)
	return c
}

func (c FilterCriteria) WithArea(area *string) FilterCriteria {
	if area == nil {
		c.Area = nil
		return c
	}
	a := *area
	c.Area = &a
	return c
}

// AreaName retorna a área pedida normalizada (trim + lower), vazia quando não há filtro
func (c FilterCriteria) AreaName() string {
	if c.Area == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*c.Area))
}

// Matches verifica apenas ano e mês
func (c FilterCriteria) Matches(ym YearMonth) bool {
	if c.Year != nil && *c.Year != ym.Year {
		return false
	}
	if c.Month != nil && *c.Month != ym.Month {
		return false
	}
	return true
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
