package utils

import (
	"strconv"
	"strings"
)

// ParseBrazilianDate lê datas no formato dd/mm/yyyy e retorna apenas ano e mês.
// O dia não é validado contra o calendário: "31/02/2025" é aceito como fevereiro de 2025.
func ParseBrazilianDate(value string) (year int, month int, ok bool) {
	parts := strings.Split(value, "/")
	if len(parts) != 3 {
		return 0, 0, false
	}

	if _, ok := parseLeadingInt(parts[0]); !ok {
		return 0, 0, false
	}

	month, ok = parseLeadingInt(parts[1])
	if !ok || month < 1 || month > 12 {
		return 0, 0, false
	}

	year, ok = parseLeadingInt(parts[2])
	if !ok {
		return 0, 0, false
	}

	return year, month, true
}

// parseLeadingInt aceita espaços à esquerda, sinal opcional e lê os dígitos iniciais,
// ignorando o restante (ex: "2025 10:30" -> 2025)
func parseLeadingInt(segment string) (int, bool) {
	s := strings.TrimLeft(segment, " \t\n\r")

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}

	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}

	return n, true
}
