package domain

import (
	"strings"
	"time"
)

type Periodicity string

const (
	PeriodicitySpecificMonth Periodicity = "specific_month"
	PeriodicityMonthly       Periodicity = "monthly"
	PeriodicityQuarterly     Periodicity = "quarterly"
	PeriodicitySemiannual    Periodicity = "semiannual"
	PeriodicityAnnual        Periodicity = "annual"
)

var periodicityAliases = map[string]Periodicity{
	"specific_month": PeriodicitySpecificMonth,
	"mes_especifico": PeriodicitySpecificMonth,
	"monthly":        PeriodicityMonthly,
	"mensal":         PeriodicityMonthly,
	"quarterly":      PeriodicityQuarterly,
	"trimestral":     PeriodicityQuarterly,
	"semiannual":     PeriodicitySemiannual,
	"semestral":      PeriodicitySemiannual,
	"annual":         PeriodicityAnnual,
	"anual":          PeriodicityAnnual,
}

// ParsePeriodicity aceita os nomes em inglês e em português
func ParsePeriodicity(value string) (Periodicity, bool) {
	p, ok := periodicityAliases[strings.ToLower(strings.TrimSpace(value))]
	return p, ok
}

// IndicatorRecord é uma linha do snapshot mensal do quadro de acompanhamento
type IndicatorRecord struct {
	Name        string  `json:"name"`
	ProjectName string  `json:"project_name"`
	SectorTag   string  `json:"sector_tag"`
	Value       float64 `json:"value"`
}

// MonthlySnapshot agrupa os indicadores realizados em um mês
type MonthlySnapshot struct {
	Year    int               `json:"year"`
	Month   int               `json:"month"`
	Records []IndicatorRecord `json:"records"`
}

// IndicatorSeries guarda os valores mensais (1..12) de um indicador em um único ano
type IndicatorSeries struct {
	Name          string          `json:"name"`
	ProjectName   string          `json:"project_name"`
	SectorTag     string          `json:"sector_tag"`
	MonthlyValues map[int]float64 `json:"monthly_values"`
}

type IndicatorValue struct {
	Name           string      `json:"name"`
	ProjectName    string      `json:"project_name"`
	SectorTag      string      `json:"sector_tag"`
	Value          int         `json:"value"`
	MonthsWithData []int       `json:"months_with_data"`
	MatchedKeyword string      `json:"matched_keyword,omitempty"`
	Periodicity    Periodicity `json:"periodicity"`
}

// IndicatorReport é a resposta consolidada da agregação de indicadores
type IndicatorReport struct {
	SessionID    string           `json:"session_id"`
	Year         int              `json:"year"`
	AnchorMonth  int              `json:"anchor_month"`
	Periodicity  Periodicity      `json:"periodicity"`
	Area         string           `json:"area,omitempty"`
	AreaKeywords []string         `json:"area_keywords,omitempty"`
	Window       []int            `json:"window"`
	Indicators   []IndicatorValue `json:"indicators"`
	FailedMonths []int            `json:"failed_months"`
	Deduplicated bool             `json:"deduplicated"`
	GeneratedAt  time.Time        `json:"generated_at"`
}
