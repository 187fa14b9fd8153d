package handler

import (
	"net/http"

	"github.com/vfg2006/portal-indicadores-api/internal/domain"
	"github.com/vfg2006/portal-indicadores-api/internal/usecases/finance"
	"github.com/vfg2006/portal-indicadores-api/pkg/apiErrors"
	"github.com/vfg2006/portal-indicadores-api/pkg/log"
	"github.com/vfg2006/portal-indicadores-api/pkg/utils"
)

// GetAvailablePeriods retorna o catálogo de períodos com contas a receber ou a pagar
func GetAvailablePeriods(service finance.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("finance-periods: buscando períodos disponíveis")

		catalog, err := service.GetAvailablePeriods(r.Context())
		if err != nil {
			logger.WithError(err).Error("finance-periods: erro ao montar catálogo de períodos")
			writeServiceError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"total_periods": len(catalog.Periods),
			"years":         catalog.Years,
			"default_year":  catalog.DefaultPeriod.Year,
		}).Info("finance-periods: períodos disponíveis recuperados com sucesso")

		writeJSON(w, logger, http.StatusOK, catalog)
	})
}

// GetFinancialSummary retorna os totais do período e área pedidos
func GetFinancialSummary(service finance.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		year, err := optionalInt(r, "year")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Ano inválido. Use formato numérico (ex: 2025)", nil)
			return
		}

		month, err := optionalInt(r, "month")
		if err != nil || (month != nil && (*month < 1 || *month > 12)) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Mês inválido. Use um valor entre 1 e 12", nil)
			return
		}

		compact, err := optionalBool(r, "compact", false)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro compact inválido", nil)
			return
		}

		visible, err := optionalBool(r, "visible", true)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro visible inválido", nil)
			return
		}

		criteria := domain.FilterCriteria{}.WithYear(year).WithMonth(month)
		if area := r.URL.Query().Get("area"); area != "" {
			criteria = criteria.WithArea(&area)
		}

		logger.WithFields(log.Fields{
			"year":  year,
			"month": month,
			"area":  criteria.AreaName(),
		}).Info("finance-summary: calculando resumo financeiro")

		summary, err := service.GetSummary(r.Context(), criteria, utils.CurrencyDisplay{Visible: visible, Compact: compact})
		if err != nil {
			logger.WithError(err).Error("finance-summary: erro ao calcular resumo financeiro")
			writeServiceError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"receivables":  summary.ReceivableCount,
			"payables":     summary.PayableCount,
			"partial_data": summary.PartialData,
		}).Info("finance-summary: resumo financeiro gerado com sucesso")

		writeJSON(w, logger, http.StatusOK, summary)
	})
}
