package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/portal-indicadores-api/pkg/apiErrors"
)

func tagMiddleware(tag string, calls *[]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*calls = append(*calls, tag)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRouter(t *testing.T) {
	var calls []string
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "handler")
		w.WriteHeader(http.StatusOK)
	})

	rt := New(WithRoutes(
		Route{
			Path:        "/v1/indicators",
			Method:      http.MethodGet,
			Handler:     ok,
			Middlewares: []func(http.Handler) http.Handler{tagMiddleware("sessao", &calls), tagMiddleware("interno", &calls)},
		},
		Route{Path: "/healthcheck", Method: http.MethodGet, Handler: ok},
	))

	t.Run("Middlewares da rota rodam na ordem da lista", func(t *testing.T) {
		calls = nil
		rec := httptest.NewRecorder()

		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/indicators", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"sessao", "interno", "handler"}, calls)
	})

	t.Run("Middlewares não vazam para outras rotas", func(t *testing.T) {
		calls = nil
		rec := httptest.NewRecorder()

		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

		assert.Equal(t, []string{"handler"}, calls)
	})

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectedCode   string
	}{
		{name: "Rota inexistente", method: http.MethodGet, path: "/v1/ranking", expectedStatus: http.StatusNotFound, expectedCode: apiErrors.ErrRouteNotFound},
		{name: "Método não permitido", method: http.MethodPost, path: "/v1/indicators", expectedStatus: http.StatusMethodNotAllowed, expectedCode: apiErrors.ErrMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			rt.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
			assert.Equal(t, tt.expectedCode, jsoniter.Get(rec.Body.Bytes(), "code").ToString())
		})
	}
}
