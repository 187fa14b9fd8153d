package erpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/portal-indicadores-api/internal/config"
)

//go:generate mockgen -source=client.go -destination=../mocks/client.go -package=mocks
type Client interface {
	ListAccounts(ctx context.Context, resource Resource, params ListAccountsParams) ([]byte, error)
}

type ERPClient struct {
	httpClient *http.Client
	config     *config.ERP
}

// NewClient cria o cliente HTTP da API do ERP
func NewClient(cfg *config.ERP) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &ERPClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}
