package aggregating

import (
	"context"

	"github.com/vfg2006/portal-indicadores-api/internal/domain"
)

// SnapshotSource busca o snapshot de indicadores de um mês na origem externa
type SnapshotSource interface {
	FetchMonthlySnapshot(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error)
}

// MonthFetcher é usado pela sessão para buscar cada mês da janela
type MonthFetcher interface {
	FetchMonth(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error)
}

// Aggregator é a interface exposta para os handlers
type Aggregator interface {
	// GetIndicators agrega os indicadores da sessão para a periodicidade pedida
	GetIndicators(ctx context.Context, query IndicatorQuery) (*domain.IndicatorReport, error)
}
