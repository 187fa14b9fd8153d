package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/portal-indicadores-api/internal/usecases/aggregating"
	"github.com/vfg2006/portal-indicadores-api/internal/usecases/finance"
	"github.com/vfg2006/portal-indicadores-api/pkg/apiErrors"
	"github.com/vfg2006/portal-indicadores-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errInvalidParam = errors.New("parâmetro inválido")

// optionalInt lê um inteiro opcional da query; vazio retorna nil
func optionalInt(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errInvalidParam
	}

	return &value, nil
}

// optionalBool lê um booleano da query, usando def quando ausente
func optionalBool(r *http.Request, name string, def bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return def, errInvalidParam
	}

	return value, nil
}

func writeJSON(w http.ResponseWriter, logger log.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("erro ao codificar resposta")
	}
}

// writeServiceError traduz os erros dos serviços para o formato padrão da API
func writeServiceError(w http.ResponseWriter, err error) {
	var financeErr *finance.FinanceError
	if errors.As(err, &financeErr) {
		apiErrors.WriteError(w, financeErr.Code, financeErr.Error(), nil)
		return
	}

	var indicatorErr *aggregating.IndicatorError
	if errors.As(err, &indicatorErr) {
		apiErrors.WriteError(w, indicatorErr.Code, indicatorErr.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", nil)
}
