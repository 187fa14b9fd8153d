package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/repository/mocks"
	"github.com/vfg2006/portal-indicadores-api/internal/config"
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type fakeRefresher struct {
	mu      sync.Mutex
	periods []string
	failing map[string]bool
}

func (f *fakeRefresher) Refresh(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	period := fmt.Sprintf("%02d-%04d", month, year)
	f.periods = append(f.periods, period)

	if f.failing[period] {
		return nil, errors.New("origem indisponível")
	}
	return &domain.MonthlySnapshot{Year: year, Month: month}, nil
}

type fakeSessionCleaner struct{}

func (fakeSessionCleaner) CleanExpired() int { return 0 }

func newSyncConfig(enabled bool) *config.Config {
	return &config.Config{
		SnapshotSync: config.SnapshotSync{
			CronSchedule:        "0 5 * * *",
			Enabled:             enabled,
			MonthLookBack:       3,
			RequestDelaySeconds: 1,
			RetentionMonths:     36,
		},
	}
}

func TestSnapshotSyncService_syncSnapshots(t *testing.T) {
	executionDate := time.Date(2025, 1, 15, 5, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		failing         map[string]bool
		setup           func(*mocks.MockIndicatorSnapshotRepository)
		expectedPeriods []string
		expectedSynced  int
		expectedFailed  int
	}{
		{
			name: "Atualiza os meses fechados anteriores, virando o ano",
			setup: func(repo *mocks.MockIndicatorSnapshotRepository) {
				repo.EXPECT().DeleteOlderThan(36).Return(int64(2), nil)
			},
			expectedPeriods: []string{"12-2024", "11-2024", "10-2024"},
			expectedSynced:  3,
			expectedFailed:  0,
		},
		{
			name:    "Falha em um mês não interrompe os demais",
			failing: map[string]bool{"11-2024": true},
			setup: func(repo *mocks.MockIndicatorSnapshotRepository) {
				repo.EXPECT().DeleteOlderThan(36).Return(int64(0), nil)
			},
			expectedPeriods: []string{"12-2024", "11-2024", "10-2024"},
			expectedSynced:  2,
			expectedFailed:  1,
		},
		{
			name: "Erro na retenção não impede o registro do resultado",
			setup: func(repo *mocks.MockIndicatorSnapshotRepository) {
				repo.EXPECT().DeleteOlderThan(36).Return(int64(0), errors.New("conexão recusada"))
			},
			expectedPeriods: []string{"12-2024", "11-2024", "10-2024"},
			expectedSynced:  3,
			expectedFailed:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockIndicatorSnapshotRepository(ctrl)
			refresher := &fakeRefresher{failing: tt.failing}
			tt.setup(repo)
			repo.EXPECT().GetAllPeriods().Return([]string{"12-2024", "11-2024", "10-2024"}, nil)

			service := NewSnapshotSyncService(refresher, repo, fakeSessionCleaner{}, newSyncConfig(true))
			service.now = func() time.Time { return executionDate }

			var sleeps []time.Duration
			service.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }

			service.syncSnapshots(context.Background())

			assert.Equal(t, tt.expectedPeriods, refresher.periods)
			assert.Equal(t, []time.Duration{time.Second, time.Second}, sleeps)

			status := service.GetStatus()
			assert.Equal(t, false, status["sync_running"])
			assert.Equal(t, tt.expectedSynced, status["last_synced_months"])
			assert.Equal(t, tt.expectedFailed, status["last_failed_months"])
			assert.Equal(t, executionDate, status["last_sync_completed_at"])
			assert.Equal(t, []string{"12-2024", "11-2024", "10-2024"}, status["cached_periods"])
		})
	}
}

func TestSnapshotSyncService_processMonths_ContextCancelled(t *testing.T) {
	refresher := &fakeRefresher{}
	service := NewSnapshotSyncService(refresher, nil, nil, newSyncConfig(false))
	service.sleep = func(time.Duration) {}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	synced, failed := service.processMonths(ctx, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 0, synced)
	assert.Equal(t, 0, failed)
	assert.Empty(t, refresher.periods)
}

func TestSnapshotSyncService_TriggerManualSync(t *testing.T) {
	t.Run("Sem cache a sincronização manual é ignorada", func(t *testing.T) {
		service := NewSnapshotSyncService(&fakeRefresher{}, nil, nil, newSyncConfig(true))

		assert.False(t, service.TriggerManualSync())
		assert.Equal(t, false, service.GetStatus()["sync_enabled"])
	})

	t.Run("Sincronização desabilitada por configuração é ignorada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		refresher := &fakeRefresher{}
		repo := mocks.NewMockIndicatorSnapshotRepository(ctrl)
		service := NewSnapshotSyncService(refresher, repo, nil, newSyncConfig(false))

		assert.False(t, service.TriggerManualSync())
		assert.Empty(t, refresher.periods)
	})

	t.Run("Sincronização em andamento não é disparada de novo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockIndicatorSnapshotRepository(ctrl)
		service := NewSnapshotSyncService(&fakeRefresher{}, repo, nil, newSyncConfig(true))
		service.syncRunning = true

		assert.False(t, service.TriggerManualSync())
	})

	t.Run("Dispara a sincronização em segundo plano", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		done := make(chan struct{})
		repo := mocks.NewMockIndicatorSnapshotRepository(ctrl)
		repo.EXPECT().DeleteOlderThan(36).DoAndReturn(func(months int) (int64, error) {
			close(done)
			return 0, nil
		})

		refresher := &fakeRefresher{}
		service := NewSnapshotSyncService(refresher, repo, nil, newSyncConfig(true))
		service.sleep = func(time.Duration) {}

		assert.True(t, service.TriggerManualSync())

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("sincronização manual não executou")
		}

		refresher.mu.Lock()
		assert.Len(t, refresher.periods, 3)
		refresher.mu.Unlock()
	})
}

func TestSnapshotSyncService_GetStatus(t *testing.T) {
	t.Run("Erro ao listar o cache mantém o restante do status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockIndicatorSnapshotRepository(ctrl)
		repo.EXPECT().GetAllPeriods().Return(nil, errors.New("conexão recusada"))

		service := NewSnapshotSyncService(&fakeRefresher{}, repo, nil, newSyncConfig(true))
		status := service.GetStatus()

		assert.Equal(t, true, status["sync_enabled"])
		assert.NotContains(t, status, "cached_periods")
	})

	t.Run("Sem cache não consulta períodos", func(t *testing.T) {
		service := NewSnapshotSyncService(&fakeRefresher{}, nil, nil, newSyncConfig(true))

		assert.NotContains(t, service.GetStatus(), "cached_periods")
	})
}

func TestSnapshotSyncService_Start(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	service := NewSnapshotSyncService(&fakeRefresher{}, nil, fakeSessionCleaner{}, newSyncConfig(false))

	assert.NoError(t, service.Start(ctx))
}
