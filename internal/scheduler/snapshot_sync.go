package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/repository"
	"github.com/vfg2006/portal-indicadores-api/internal/config"
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
)

const sessionCleanupInterval = 5 * time.Minute

// SnapshotRefresher busca um mês na origem e grava no cache
type SnapshotRefresher interface {
	Refresh(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error)
}

// SessionCleaner remove sessões de agregação expiradas
type SessionCleaner interface {
	CleanExpired() int
}

// SnapshotSyncConfig representa a configuração do agendador de snapshots mensais
type SnapshotSyncConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	SyncEnabled         bool
	MonthLookBack       int
	RetentionMonths     int
}

// SnapshotSyncService pré-carrega os snapshots dos meses fechados e mantém a retenção do cache
type SnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              SnapshotSyncConfig
	refresher           SnapshotRefresher
	snapshotRepo        repository.IndicatorSnapshotRepository
	sessions            SessionCleaner
	now                 func() time.Time
	sleep               func(time.Duration)
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncedMonths    int
	lastFailedMonths    int
}

// NewSnapshotSyncService cria uma nova instância do serviço de sincronização de snapshots
func NewSnapshotSyncService(
	refresher SnapshotRefresher,
	snapshotRepo repository.IndicatorSnapshotRepository,
	sessions SessionCleaner,
	appConfig *config.Config,
) *SnapshotSyncService {
	// Criar a configuração com base na config global
	syncConfig := SnapshotSyncConfig{
		CronSchedule:        appConfig.SnapshotSync.CronSchedule,
		RequestDelaySeconds: appConfig.SnapshotSync.RequestDelaySeconds,
		SyncEnabled:         appConfig.SnapshotSync.Enabled && snapshotRepo != nil,
		MonthLookBack:       appConfig.SnapshotSync.MonthLookBack,
		RetentionMonths:     appConfig.SnapshotSync.RetentionMonths,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"month_lookback":        syncConfig.MonthLookBack,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de snapshots carregada")

	return &SnapshotSyncService{
		scheduler:    gocron.NewScheduler(time.Local),
		config:       syncConfig,
		refresher:    refresher,
		snapshotRepo: snapshotRepo,
		sessions:     sessions,
		now:          time.Now,
		sleep:        time.Sleep,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *SnapshotSyncService) Start(ctx context.Context) error {
	if s.sessions != nil {
		_, err := s.scheduler.Every(sessionCleanupInterval).Do(func() {
			if removed := s.sessions.CleanExpired(); removed > 0 {
				logrus.WithField("removed", removed).Debug("Sessões de agregação expiradas removidas")
			}
		})
		if err != nil {
			return fmt.Errorf("erro ao agendar limpeza de sessões: %w", err)
		}
	}

	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de snapshots desabilitada por configuração")
	} else {
		logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de snapshots")

		// Agendar a sincronização de snapshots
		_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
			s.syncSnapshots(ctx)
		})
		if err != nil {
			return fmt.Errorf("erro ao agendar sincronização de snapshots: %w", err)
		}
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de snapshots")
		s.scheduler.Stop()
	}()

	return nil
}

// syncSnapshots atualiza os últimos meses fechados e remove snapshots antigos
func (s *SnapshotSyncService) syncSnapshots(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := s.now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.WithField("month_lookback", s.config.MonthLookBack).Info("Iniciando sincronização de snapshots mensais")

	synced, failed := s.processMonths(ctx, startTime)

	if s.config.RetentionMonths > 0 {
		removed, err := s.snapshotRepo.DeleteOlderThan(s.config.RetentionMonths)
		if err != nil {
			logrus.WithError(err).Error("Erro ao remover snapshots antigos")
		} else if removed > 0 {
			logrus.WithField("removed", removed).Info("Snapshots antigos removidos")
		}
	}

	logrus.WithFields(logrus.Fields{
		"duration": s.now().Sub(startTime).String(),
		"synced":   synced,
		"failed":   failed,
	}).Info("Sincronização de snapshots concluída")

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = s.now()
	s.lastSyncedMonths = synced
	s.lastFailedMonths = failed
	s.syncMutex.Unlock()
}

// processMonths busca em sequência os meses fechados anteriores a now
func (s *SnapshotSyncService) processMonths(ctx context.Context, now time.Time) (synced, failed int) {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= s.config.MonthLookBack; i++ {
		if ctx.Err() != nil {
			logrus.Info("Sincronização de snapshots interrompida")
			return synced, failed
		}

		month := firstOfMonth.AddDate(0, -i, 0)

		snapshot, err := s.refresher.Refresh(ctx, month.Year(), int(month.Month()))
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"period": month.Format("01-2006"),
			}).Error("Erro ao sincronizar snapshot mensal")
			failed++
		} else {
			logrus.WithFields(logrus.Fields{
				"period":  month.Format("01-2006"),
				"records": len(snapshot.Records),
			}).Info("Snapshot mensal salvo com sucesso")
			synced++
		}

		// Aguardar antes do próximo mês para evitar excesso de requisições
		if i < s.config.MonthLookBack && s.config.RequestDelaySeconds > 0 {
			s.sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}
	}

	return synced, failed
}

// TriggerManualSync inicia manualmente uma sincronização de snapshots
func (s *SnapshotSyncService) TriggerManualSync() bool {
	if !s.config.SyncEnabled {
		logrus.Warn("Sincronização de snapshots desabilitada por configuração, solicitação manual ignorada")
		return false
	}

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de snapshots")
	go s.syncSnapshots(context.Background())
	return true
}

// GetStatus retorna o status atual da sincronização e os períodos já guardados no cache
func (s *SnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	status := map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"month_lookback":         s.config.MonthLookBack,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_synced_months":     s.lastSyncedMonths,
		"last_failed_months":     s.lastFailedMonths,
	}
	s.syncMutex.Unlock()

	if s.snapshotRepo == nil {
		return status
	}

	periods, err := s.snapshotRepo.GetAllPeriods()
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar períodos do cache de snapshots")
		return status
	}
	status["cached_periods"] = periods

	return status
}
