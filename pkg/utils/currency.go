package utils

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	CurrencySymbol = "R$"
	MaskedValue    = "••••••"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// CurrencyDisplay descreve como um valor em reais deve ser exibido no painel.
// É um valor imutável: Toggle devolve uma nova configuração.
type CurrencyDisplay struct {
	Visible bool
	Compact bool
}

// Format formata o valor respeitando visibilidade e modo compacto
func (d CurrencyDisplay) Format(value float64) string {
	if !d.Visible {
		return MaskedValue
	}

	return FormatCurrency(value, d.Compact)
}

// Toggle alterna a visibilidade dos valores
func (d CurrencyDisplay) Toggle() CurrencyDisplay {
	d.Visible = !d.Visible
	return d
}

// FormatCurrency formata em BRL (pt-BR) sem forçar casas decimais, com o sinal antes do símbolo.
// No modo compacto valores a partir de mil usam sufixo K e a partir de um milhão sufixo M;
// o sufixo é escolhido depois do arredondamento.
func FormatCurrency(value float64, compact bool) string {
	sign := ""
	abs := math.Abs(value)
	if value < 0 && math.Round(abs*100) != 0 {
		sign = "-"
	}

	if compact && abs >= 1_000 {
		thousands := math.Round(abs / 1_000)
		if abs >= 1_000_000 || thousands >= 1_000 {
			return sign + CurrencySymbol + " " + decimalComma(strconv.FormatFloat(abs/1_000_000, 'f', 1, 64)) + "M"
		}
		return sign + CurrencySymbol + " " + strconv.FormatFloat(thousands, 'f', 0, 64) + "K"
	}

	return sign + CurrencySymbol + " " + brPrinter.Sprint(number.Decimal(abs, number.MaxFractionDigits(2)))
}

func decimalComma(s string) string {
	return strings.Replace(s, ".", ",", 1)
}
