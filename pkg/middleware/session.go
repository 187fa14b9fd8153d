package middleware

import (
	"net/http"

	"github.com/vfg2006/portal-indicadores-api/pkg/apiErrors"
	"github.com/vfg2006/portal-indicadores-api/pkg/log"
	"github.com/vfg2006/portal-indicadores-api/pkg/utils"
)

// SessionMiddleware garante um ID de sessão de agregação por cliente. O ID enviado em
// X-Session-ID é reaproveitado; ausente ou inválido, um novo é gerado. O ID final vai
// para o contexto e volta no cabeçalho da resposta.
func SessionMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := log.ForContext(r.Context())

			sessionID := r.Header.Get(SessionIDHeader)
			if sessionID != "" && !utils.IsValidSessionID(sessionID) {
				logger.WithField("received_session_id", sessionID).Warn("ID de sessão inválido, gerando um novo")
				sessionID = ""
			}

			if sessionID == "" {
				generated, err := utils.GenerateSessionID()
				if err != nil {
					logger.WithError(err).Error("Erro ao gerar ID de sessão")
					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Não foi possível iniciar a sessão", nil)
					return
				}
				sessionID = generated
			}

			w.Header().Set(SessionIDHeader, sessionID)
			next.ServeHTTP(w, r.WithContext(log.WithSessionID(r.Context(), sessionID)))
		})
	}
}
