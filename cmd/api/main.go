package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/database/postgres"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/integrator/erp"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/integrator/erp/erpclient"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/integrator/workboard"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/integrator/workboard/workboardclient"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/repository"
	"github.com/vfg2006/portal-indicadores-api/internal/api"
	"github.com/vfg2006/portal-indicadores-api/internal/config"
	"github.com/vfg2006/portal-indicadores-api/internal/scheduler"
	"github.com/vfg2006/portal-indicadores-api/internal/usecases/aggregating"
	"github.com/vfg2006/portal-indicadores-api/internal/usecases/finance"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	erpClient := erpclient.NewClient(&cfg.ERP)
	erpIntegrator := erp.New(&cfg.ERP, erpClient)

	workboardClient := workboardclient.NewClient(&cfg.Workboard)
	workboardIntegrator := workboard.New(workboardClient)

	financeService := finance.NewService(erpIntegrator, time.Now)

	// Inicializa o provedor de snapshots com suporte a cache
	snapshotProvider := aggregating.NewSnapshotProvider(workboardIntegrator, cfg.Workboard.Timeout, time.Now)

	var snapshotRepo repository.IndicatorSnapshotRepository
	if cfg.Cache.SnapshotCacheEnabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		snapshotRepo = repository.NewIndicatorSnapshotRepository(pgConn)
		snapshotProvider.WithCache(snapshotRepo)
	}

	sessionOptions := aggregating.SessionOptions{
		MaxConcurrency: cfg.Aggregation.MaxConcurrency,
		MaxRetries:     cfg.Aggregation.MaxRetries,
		RetryDelay:     cfg.Aggregation.RetryDelay,
		DedupWindow:    cfg.Aggregation.DedupWindow,
		Now:            time.Now,
	}

	registry := aggregating.NewRegistry(
		func(id string) *aggregating.Session {
			return aggregating.NewSession(id, snapshotProvider, sessionOptions)
		},
		cfg.Aggregation.SessionMaxEntries,
		cfg.Aggregation.SessionTTL,
		time.Now,
	)

	indicatorService := aggregating.NewService(registry, time.Now)

	// Inicializa o agendador de pré-carga de snapshots
	snapshotSyncService := scheduler.NewSnapshotSyncService(
		snapshotProvider,
		snapshotRepo,
		registry,
		cfg,
	)

	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de snapshots")
	} else {
		logrus.Info("Agendador de sincronização de snapshots iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		financeService,
		indicatorService,
		snapshotSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
