package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// numericPrefix reproduz a leitura tolerante de prefixo numérico (ex: "12-3" -> 12)
var numericPrefix = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)

// RoundWithTwoDecimalPlace arredonda valores monetários para centavos
func RoundWithTwoDecimalPlace(d decimal.Decimal) float64 {
	if d.IsZero() {
		return 0
	}

	return d.Round(2).InexactFloat64()
}

// ToNumber converte valores heterogêneos (números, strings em formato brasileiro, "R$ 1.234,56")
// para float64. Nunca falha: entradas vazias ou inválidas viram 0.
func ToNumber(value any) float64 {
	number, ok := ParseNumber(value)
	if !ok {
		logrus.WithField("value", fmt.Sprintf("%v", value)).Debug("utils: valor numérico inválido convertido para 0")
	}

	return number
}

// ParseNumber tem o mesmo comportamento de ToNumber, mas informa em ok=false quando uma
// entrada não vazia precisou ser convertida para 0 por não ser numérica.
func ParseNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, true
		}
		return parseNumericString(v.String())
	case bool:
		if !v {
			return 0, true
		}
		return parseNumericString(strconv.FormatBool(v))
	case string:
		if v == "" {
			return 0, true
		}
		return parseNumericString(v)
	default:
		return parseNumericString(fmt.Sprintf("%v", v))
	}
}

func parseNumericString(raw string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw)

	// Vírgula é o separador decimal; apenas o último ponto sobrevive,
	// os anteriores são tratados como separadores de milhar
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if last := strings.LastIndex(cleaned, "."); last >= 0 {
		cleaned = strings.ReplaceAll(cleaned[:last], ".", "") + cleaned[last:]
	}

	match := numericPrefix.FindString(cleaned)
	if match == "" {
		return 0, false
	}

	number, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}

	return number, true
}
