package classifying

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
)

// MatchResult indica se o registro pertence à área e qual palavra casou
type MatchResult struct {
	Matched bool   `json:"matched"`
	Keyword string `json:"keyword,omitempty"`
}

type Matcher struct {
	area     string
	keywords []string
}

// NewMatcher cria o classificador para a área pedida. Área vazia significa sem filtro.
func NewMatcher(area string) Matcher {
	normalized := NormalizeArea(area)
	m := Matcher{area: normalized, keywords: KeywordsFor(normalized)}

	if normalized != "" {
		if _, known := areaKeywords[ResolveArea(normalized)]; !known {
			logrus.WithField("area", normalized).Debug("classifying: área desconhecida, usando a própria área como palavra-chave")
		}
	}

	return m
}

// Active informa se existe filtro de área
func (m Matcher) Active() bool {
	return m.area != ""
}

func (m Matcher) Area() string {
	return m.area
}

// Keywords devolve uma cópia das palavras-chave usadas no filtro
func (m Matcher) Keywords() []string {
	if len(m.keywords) == 0 {
		return nil
	}
	return append([]string(nil), m.keywords...)
}

// MatchText testa as palavras-chave contra um texto livre
func (m Matcher) MatchText(text string) MatchResult {
	if !m.Active() {
		return MatchResult{Matched: true}
	}

	lowered := strings.ToLower(text)
	for _, keyword := range m.keywords {
		if strings.Contains(lowered, keyword) {
			return MatchResult{Matched: true, Keyword: keyword}
		}
	}

	return MatchResult{}
}

// Match usa "código descrição" do projeto como texto
func (m Matcher) Match(record domain.FinancialRecord) MatchResult {
	return m.MatchText(RecordText(record))
}

// MatchSeries usa "projeto setor" do indicador como texto
func (m Matcher) MatchSeries(series domain.IndicatorSeries) MatchResult {
	return m.MatchText(series.ProjectName + " " + series.SectorTag)
}

// RecordText monta o texto composto do registro em minúsculo
func RecordText(record domain.FinancialRecord) string {
	return strings.ToLower(record.ProjectCode() + " " + record.ProjectDescription())
}

// FilterRecords mantém apenas os registros da área, sem alterar a entrada
func FilterRecords(records []domain.FinancialRecord, m Matcher) []domain.FinancialRecord {
	if !m.Active() {
		return records
	}

	filtered := make([]domain.FinancialRecord, 0, len(records))
	for _, record := range records {
		if m.Match(record).Matched {
			filtered = append(filtered, record)
		}
	}

	return filtered
}
