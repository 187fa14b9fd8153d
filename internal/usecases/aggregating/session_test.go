package aggregating

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
)

// fetcherFunc adapta uma função para MonthFetcher
type fetcherFunc func(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error)

func (f fetcherFunc) FetchMonth(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error) {
	return f(ctx, year, month)
}

// fakeClock é um relógio controlado pelos testes
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func snapshotWith(year, month int, value float64) *domain.MonthlySnapshot {
	return &domain.MonthlySnapshot{
		Year:  year,
		Month: month,
		Records: []domain.IndicatorRecord{
			{Name: "Atendimentos", ProjectName: "Favela 3D", SectorTag: "Favela", Value: value},
		},
	}
}

func TestSession_Load(t *testing.T) {
	t.Run("Carrega todos os meses pedidos em ordem", func(t *testing.T) {
		fetcher := fetcherFunc(func(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error) {
			return snapshotWith(year, month, float64(month)), nil
		})
		session := NewSession("s1", fetcher, SessionOptions{MaxConcurrency: 2})

		result, err := session.Load(context.Background(), 2025, []int{3, 1, 2, 2, 14})

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, result.Months)
		assert.Len(t, result.Snapshots, 3)
		assert.Equal(t, 1, result.Snapshots[0].Month)
		assert.Equal(t, 3, result.Snapshots[2].Month)
		assert.Empty(t, result.FailedMonths)
		assert.False(t, result.Deduplicated)
	})

	t.Run("Mês com falha não derruba os demais", func(t *testing.T) {
		var calls int32
		fetcher := fetcherFunc(func(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error) {
			if month == 2 {
				atomic.AddInt32(&calls, 1)
				return nil, errors.New("timeout")
			}
			return snapshotWith(year, month, 10), nil
		})
		session := NewSession("s1", fetcher, SessionOptions{MaxRetries: 2})

		result, err := session.Load(context.Background(), 2025, []int{1, 2, 3})

		require.NoError(t, err)
		assert.Equal(t, []int{2}, result.FailedMonths)
		assert.Len(t, result.Snapshots, 2)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("Nova tentativa recupera falha temporária", func(t *testing.T) {
		var calls int32
		fetcher := fetcherFunc(func(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				return nil, errors.New("falha temporária")
			}
			return snapshotWith(year, month, 10), nil
		})
		session := NewSession("s1", fetcher, SessionOptions{MaxRetries: 1, RetryDelay: time.Millisecond})

		result, err := session.Load(context.Background(), 2025, []int{5})

		require.NoError(t, err)
		assert.Empty(t, result.FailedMonths)
		assert.Len(t, result.Snapshots, 1)
	})

	t.Run("Snapshot nulo vira mês vazio", func(t *testing.T) {
		fetcher := fetcherFunc(func(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error) {
			return nil, nil
		})
		session := NewSession("s1", fetcher, SessionOptions{})

		result, err := session.Load(context.Background(), 2025, []int{4})

		require.NoError(t, err)
		assert.Len(t, result.Snapshots, 1)
		assert.Equal(t, 4, result.Snapshots[0].Month)
		assert.Empty(t, result.Snapshots[0].Records)
	})

	t.Run("Contexto cancelado pelo chamador retorna erro", func(t *testing.T) {
		fetcher := fetcherFunc(func(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error) {
			return snapshotWith(year, month, 1), nil
		})
		session := NewSession("s1", fetcher, SessionOptions{})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := session.Load(ctx, 2025, []int{1})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSession_Dedup(t *testing.T) {
	clock := newFakeClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	var calls int32
	fetcher := fetcherFunc(func(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error) {
		atomic.AddInt32(&calls, 1)
		return snapshotWith(year, month, 1), nil
	})
	session := NewSession("s1", fetcher, SessionOptions{DedupWindow: 5 * time.Second, Now: clock.Now})

	first, err := session.Load(context.Background(), 2025, []int{1, 2, 3})
	require.NoError(t, err)
	assert.False(t, first.Deduplicated)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	t.Run("Mesma carga dentro da janela reaproveita o resultado", func(t *testing.T) {
		clock.Advance(2 * time.Second)

		second, err := session.Load(context.Background(), 2025, []int{3, 2, 1})

		require.NoError(t, err)
		assert.True(t, second.Deduplicated)
		assert.Equal(t, first.Snapshots, second.Snapshots)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("Carga diferente busca de novo", func(t *testing.T) {
		third, err := session.Load(context.Background(), 2024, []int{1, 2, 3})

		require.NoError(t, err)
		assert.False(t, third.Deduplicated)
		assert.Equal(t, int32(6), atomic.LoadInt32(&calls))
	})

	t.Run("Depois da janela busca de novo", func(t *testing.T) {
		clock.Advance(10 * time.Second)

		fourth, err := session.Load(context.Background(), 2024, []int{1, 2, 3})

		require.NoError(t, err)
		assert.False(t, fourth.Deduplicated)
		assert.Equal(t, int32(9), atomic.LoadInt32(&calls))
	})
}

func TestSession_Supersede(t *testing.T) {
	started := make(chan struct{})
	var once sync.Once

	fetcher := fetcherFunc(func(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error) {
		if year == 2024 {
			once.Do(func() { close(started) })
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return snapshotWith(year, month, 1), nil
	})
	session := NewSession("s1", fetcher, SessionOptions{})

	errCh := make(chan error, 1)
	go func() {
		_, err := session.Load(context.Background(), 2024, []int{1})
		errCh <- err
	}()

	<-started

	result, err := session.Load(context.Background(), 2025, []int{1})
	require.NoError(t, err)
	assert.Equal(t, 2025, result.Year)

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("carga anterior não foi cancelada")
	}
}

func TestSession_SupersedeOnDedupHit(t *testing.T) {
	clock := newFakeClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	started := make(chan struct{})
	var once sync.Once

	fetcher := fetcherFunc(func(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error) {
		if year == 2024 {
			once.Do(func() { close(started) })
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return snapshotWith(year, month, 1), nil
	})
	session := NewSession("s1", fetcher, SessionOptions{DedupWindow: 5 * time.Second, Now: clock.Now})

	_, err := session.Load(context.Background(), 2025, []int{1})
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, err := session.Load(context.Background(), 2024, []int{1})
		errCh <- err
	}()

	<-started

	result, err := session.Load(context.Background(), 2025, []int{1})
	require.NoError(t, err)
	assert.True(t, result.Deduplicated)
	assert.Equal(t, 2025, result.Year)

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("carga anterior não foi cancelada")
	}

	t.Run("Carga substituída não sobrescreve o último resultado", func(t *testing.T) {
		again, err := session.Load(context.Background(), 2025, []int{1})

		require.NoError(t, err)
		assert.True(t, again.Deduplicated)
		assert.Equal(t, 2025, again.Year)
	})
}
