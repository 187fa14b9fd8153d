package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/portal-indicadores-api/internal/api/handler/router"
	"github.com/vfg2006/portal-indicadores-api/internal/usecases/aggregating"
	"github.com/vfg2006/portal-indicadores-api/internal/usecases/finance"
	"github.com/vfg2006/portal-indicadores-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(time.Now),
		},
	}
}

func Finance(service finance.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/finance/periods",
			Method:  http.MethodGet,
			Handler: GetAvailablePeriods(service),
		},
		{
			Path:    "/v1/finance/summary",
			Method:  http.MethodGet,
			Handler: GetFinancialSummary(service),
		},
	}
}

func Indicators(service aggregating.Aggregator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/indicators",
			Method:  http.MethodGet,
			Handler: GetIndicators(service),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.SessionMiddleware(),
			},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
