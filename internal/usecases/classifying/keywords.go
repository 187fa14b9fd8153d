package classifying

import "strings"

// areaKeywords é a tabela canônica de áreas. Palavras em minúsculo, na ordem de teste.
var areaKeywords = map[string][]string{
	"favela":          {"favela", "f3d"},
	"educacao":        {"educa", "escola", "reforço", "reforco", "alfabetiza"},
	"cultura":         {"cultura", "arte", "música", "musica", "teatro", "dança", "danca"},
	"esporte":         {"esporte", "futebol", "jiu", "atletismo", "capoeira"},
	"empregabilidade": {"emprega", "capacita", "profission", "qualifica"},
	"assistencia":     {"assistência", "assistencia", "cesta", "acolhimento"},
}

// areaAliases resolve as chaves legadas para a chave canônica
var areaAliases = map[string]string{
	"favela 3d":          "favela",
	"favela3d":           "favela",
	"favela_3d":          "favela",
	"educação":           "educacao",
	"educacional":        "educacao",
	"culturais":          "cultura",
	"esportes":           "esporte",
	"trabalho":           "empregabilidade",
	"trabalho e renda":   "empregabilidade",
	"assistência":        "assistencia",
	"assistencia social": "assistencia",
	"assistência social": "assistencia",
}

// NormalizeArea aplica trim + lower
func NormalizeArea(area string) string {
	return strings.ToLower(strings.TrimSpace(area))
}

// ResolveArea devolve a chave canônica da área, ou a própria área normalizada quando não conhecida
func ResolveArea(area string) string {
	normalized := NormalizeArea(area)
	if canonical, ok := areaAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// KeywordsFor retorna as palavras-chave da área. Área desconhecida vira uma lista com ela mesma.
func KeywordsFor(area string) []string {
	key := ResolveArea(area)
	if key == "" {
		return nil
	}

	if keywords, ok := areaKeywords[key]; ok {
		out := make([]string, len(keywords))
		copy(out, keywords)
		return out
	}

	return []string{key}
}

// Areas lista as chaves canônicas conhecidas
func Areas() []string {
	return []string{"favela", "educacao", "cultura", "esporte", "empregabilidade", "assistencia"}
}
