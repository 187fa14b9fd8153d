package aggregating

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/repository"
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
	"golang.org/x/sync/singleflight"
)

// SnapshotProvider busca snapshots mensais na origem, usando o banco como cache de meses fechados.
// Buscas simultâneas do mesmo mês, vindas de sessões diferentes, viram uma única chamada.
type SnapshotProvider struct {
	source   SnapshotSource
	repo     repository.IndicatorSnapshotRepository
	useCache bool
	group    singleflight.Group
	now      func() time.Time
	timeout  time.Duration
}

func NewSnapshotProvider(source SnapshotSource, timeout time.Duration, now func() time.Time) *SnapshotProvider {
	if now == nil {
		now = time.Now
	}

	return &SnapshotProvider{
		source:  source,
		now:     now,
		timeout: timeout,
	}
}

// WithCache habilita o uso do banco como cache de snapshots
func (p *SnapshotProvider) WithCache(repo repository.IndicatorSnapshotRepository) *SnapshotProvider {
	p.repo = repo
	p.useCache = repo != nil
	return p
}

// FetchMonth implementa MonthFetcher
func (p *SnapshotProvider) FetchMonth(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error) {
	key := fmt.Sprintf("%04d-%02d", year, month)

	// a chamada compartilhada não pode ser cancelada pela sessão que chegou primeiro
	resultChan := p.group.DoChan(key, func() (interface{}, error) {
		fetchCtx := context.WithoutCancel(ctx)
		if p.timeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, p.timeout)
			defer cancel()
		}
		return p.load(fetchCtx, year, month)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.MonthlySnapshot), nil
	}
}

// Refresh busca o mês direto na origem e atualiza o cache
func (p *SnapshotProvider) Refresh(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error) {
	snapshot, err := p.source.FetchMonthlySnapshot(ctx, year, month)
	if err != nil {
		return nil, err
	}

	if p.useCache {
		if err := p.save(year, month, snapshot); err != nil {
			return nil, err
		}
	}

	return normalizeSnapshot(snapshot, year, month), nil
}

func (p *SnapshotProvider) load(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error) {
	cacheable := p.useCache && p.isClosedMonth(year, month)

	if cacheable {
		entry, err := p.repo.GetByPeriod(periodDate(year, month))
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"year":  year,
				"month": month,
			}).WithError(err).Warn("aggregating: erro ao ler snapshot do cache, buscando na origem")
		} else if entry != nil {
			return &domain.MonthlySnapshot{Year: year, Month: month, Records: entry.Records}, nil
		}
	}

	snapshot, err := p.source.FetchMonthlySnapshot(ctx, year, month)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := p.save(year, month, snapshot); err != nil {
			logrus.WithFields(logrus.Fields{
				"year":  year,
				"month": month,
			}).WithError(err).Warn("aggregating: erro ao salvar snapshot no cache")
		}
	}

	return normalizeSnapshot(snapshot, year, month), nil
}

func (p *SnapshotProvider) save(year, month int, snapshot *domain.MonthlySnapshot) error {
	var records []domain.IndicatorRecord
	if snapshot != nil {
		records = snapshot.Records
	}

	return p.repo.SaveOrUpdate(&domain.MonthlyIndicatorSnapshotEntry{
		Period:  fmt.Sprintf("%02d-%04d", month, year),
		Records: records,
	})
}

// isClosedMonth indica se o mês já terminou; o mês corrente nunca vai para o cache
func (p *SnapshotProvider) isClosedMonth(year, month int) bool {
	return !periodDate(year, month).AddDate(0, 1, 0).After(p.now())
}

func periodDate(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

func normalizeSnapshot(snapshot *domain.MonthlySnapshot, year, month int) *domain.MonthlySnapshot {
	if snapshot == nil {
		return &domain.MonthlySnapshot{Year: year, Month: month}
	}
	out := *snapshot
	out.Year = year
	out.Month = month
	return &out
}
