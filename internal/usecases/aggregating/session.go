package aggregating

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

type SessionOptions struct {
	MaxConcurrency int
	MaxRetries     int
	RetryDelay     time.Duration
	DedupWindow    time.Duration
	Now            func() time.Time
}

func (o SessionOptions) withDefaults() SessionOptions {
	if o.MaxConcurrency <= 0 {
		o.MaxConcurrency = 4
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// LoadResult é o resultado de uma carga de meses de um mesmo ano
type LoadResult struct {
	Year         int
	Months       []int
	Snapshots    []domain.MonthlySnapshot
	FailedMonths []int
	Deduplicated bool
	LoadedAt     time.Time
}

// Session guarda o estado de carga de um único cliente do painel.
// Uma nova carga cancela a que estiver em andamento.
type Session struct {
	id      string
	fetcher MonthFetcher
	opts    SessionOptions

	mu             sync.Mutex
	generation     uint64
	cancelInFlight context.CancelFunc
	lastKey        string
	lastFetchAt    time.Time
	lastResult     *LoadResult
}

func NewSession(id string, fetcher MonthFetcher, opts SessionOptions) *Session {
	return &Session{
		id:      id,
		fetcher: fetcher,
		opts:    opts.withDefaults(),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Load busca os meses pedidos do ano. Se a mesma carga terminou há menos de DedupWindow,
// devolve o resultado anterior sem buscar de novo.
func (s *Session) Load(ctx context.Context, year int, months []int) (*LoadResult, error) {
	months = normalizeMonths(months)
	key := fmt.Sprintf("%d:%v", year, months)

	s.mu.Lock()
	// Qualquer pedido novo substitui a carga em andamento, inclusive quando reaproveita o resultado
	if s.cancelInFlight != nil {
		s.cancelInFlight()
		s.cancelInFlight = nil
	}
	s.generation++
	generation := s.generation

	if s.lastResult != nil && s.lastKey == key && s.opts.Now().Sub(s.lastFetchAt) < s.opts.DedupWindow {
		cached := *s.lastResult
		cached.Deduplicated = true
		s.mu.Unlock()

		logrus.WithFields(logrus.Fields{
			"session": s.id,
			"key":     key,
		}).Debug("aggregating: carga repetida dentro da janela, reutilizando resultado")
		return &cached, nil
	}

	loadCtx, cancel := context.WithCancel(ctx)
	s.cancelInFlight = cancel
	s.mu.Unlock()
	defer cancel()

	result, err := s.fetchAll(loadCtx, year, months)

	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		logrus.WithFields(logrus.Fields{
			"session": s.id,
			"key":     key,
		}).Debug("aggregating: carga descartada, substituída por uma mais recente")
		return nil, ErrSuperseded
	}
	s.cancelInFlight = nil

	if err != nil {
		return nil, err
	}

	result.LoadedAt = s.opts.Now()
	s.lastKey = key
	s.lastFetchAt = result.LoadedAt
	s.lastResult = result

	out := *result
	return &out, nil
}

func (s *Session) fetchAll(ctx context.Context, year int, months []int) (*LoadResult, error) {
	snapshots := make([]*domain.MonthlySnapshot, len(months))
	failed := make([]bool, len(months))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxConcurrency)

	for i, month := range months {
		i, month := i, month
		g.Go(func() error {
			snapshot, err := s.fetchWithRetry(gctx, year, month)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}

				logrus.WithFields(logrus.Fields{
					"session": s.id,
					"year":    year,
					"month":   month,
				}).WithError(err).Warn("aggregating: mês sem dados após tentativas, seguindo sem ele")
				failed[i] = true
				return nil
			}

			snapshots[i] = snapshot
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &LoadResult{
		Year:         year,
		Months:       months,
		Snapshots:    make([]domain.MonthlySnapshot, 0, len(months)),
		FailedMonths: make([]int, 0),
	}

	for i, month := range months {
		if failed[i] {
			result.FailedMonths = append(result.FailedMonths, month)
			continue
		}
		if snapshots[i] != nil {
			result.Snapshots = append(result.Snapshots, *snapshots[i])
		}
	}

	return result, nil
}

func (s *Session) fetchWithRetry(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error) {
	var lastErr error

	for attempt := 0; attempt <= s.opts.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		snapshot, err := s.fetcher.FetchMonth(ctx, year, month)
		if err == nil {
			if snapshot == nil {
				snapshot = &domain.MonthlySnapshot{Year: year, Month: month}
			}
			return snapshot, nil
		}
		lastErr = err

		if attempt < s.opts.MaxRetries && s.opts.RetryDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.opts.RetryDelay * time.Duration(attempt+1)):
			}
		}
	}

	return nil, lastErr
}

// normalizeMonths remove meses fora de 1..12 e duplicados, em ordem crescente
func normalizeMonths(months []int) []int {
	seen := make(map[int]bool)
	out := make([]int, 0, len(months))
	for _, m := range months {
		if m < 1 || m > 12 || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	sort.Ints(out)
	return out
}
