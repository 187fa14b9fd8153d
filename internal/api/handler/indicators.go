package handler

import (
	"net/http"

	"github.com/vfg2006/portal-indicadores-api/internal/usecases/aggregating"
	"github.com/vfg2006/portal-indicadores-api/pkg/apiErrors"
	"github.com/vfg2006/portal-indicadores-api/pkg/log"
)

// GetIndicators agrega os indicadores na periodicidade pedida, usando a sessão posta no contexto
// por middleware.SessionMiddleware
func GetIndicators(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		year, err := optionalInt(r, "year")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Ano inválido. Use formato numérico (ex: 2025)", nil)
			return
		}

		month, err := optionalInt(r, "month")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Mês inválido. Use um valor entre 1 e 12", nil)
			return
		}

		query := aggregating.IndicatorQuery{
			SessionID:   log.GetSessionID(r.Context()),
			Periodicity: r.URL.Query().Get("periodicity"),
			Year:        year,
			Month:       month,
			Area:        r.URL.Query().Get("area"),
		}

		logger.WithFields(log.Fields{
			"periodicity": query.Periodicity,
			"year":        year,
			"month":       month,
			"area":        query.Area,
		}).Info("indicators: agregando indicadores")

		report, err := service.GetIndicators(r.Context(), query)
		if err != nil {
			logger.WithError(err).Error("indicators: erro ao agregar indicadores")
			writeServiceError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"session":       report.SessionID,
			"indicators":    len(report.Indicators),
			"failed_months": report.FailedMonths,
			"deduplicated":  report.Deduplicated,
		}).Info("indicators: indicadores agregados com sucesso")

		writeJSON(w, logger, http.StatusOK, report)
	})
}
