package workboardclient

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/portal-indicadores-api/internal/config"
)

//go:generate mockgen -source=client.go -destination=../mocks/client.go -package=mocks
type Client interface {
	GetSnapshot(ctx context.Context, params SnapshotParams) ([]byte, error)
}

type WorkboardClient struct {
	httpClient *http.Client
	config     *config.Workboard
}

// NewClient cria o cliente HTTP do quadro de acompanhamento
func NewClient(cfg *config.Workboard) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &WorkboardClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}
