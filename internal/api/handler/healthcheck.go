package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/portal-indicadores-api/pkg/log"
)

type healthcheckResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthcheckHandler responde à sonda de liveness com o horário do servidor
func HealthcheckHandler(now func() time.Time) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log.ForContext(r.Context()), http.StatusOK, healthcheckResponse{
			Status:    "ok",
			Timestamp: now(),
		})
	})
}
