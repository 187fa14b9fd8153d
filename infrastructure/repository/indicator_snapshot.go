package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/database/postgres"
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
	"github.com/vfg2006/portal-indicadores-api/pkg/utils"
)

const (
	indicatorSnapshotsTable = "monthly_indicator_snapshots mis"
)

//go:generate mockgen -source=indicator_snapshot.go -destination=mocks/indicator_snapshot.go -package=mocks
type IndicatorSnapshotRepository interface {
	GetByPeriod(date time.Time) (*domain.MonthlyIndicatorSnapshotEntry, error)
	SaveOrUpdate(entry *domain.MonthlyIndicatorSnapshotEntry) error
	DeleteOlderThan(months int) (int64, error)
	GetAllPeriods() ([]string, error)
}

type indicatorSnapshotRepository struct {
	conn *postgres.Connection
	now  func() time.Time
}

func NewIndicatorSnapshotRepository(conn *postgres.Connection) IndicatorSnapshotRepository {
	return &indicatorSnapshotRepository{
		conn: conn,
		now:  time.Now,
	}
}

func (r *indicatorSnapshotRepository) GetByPeriod(date time.Time) (*domain.MonthlyIndicatorSnapshotEntry, error) {
	// Formatar a data no formato mm-yyyy
	period := fmt.Sprintf("%02d-%04d", int(date.Month()), date.Year())

	query, args, err := squirrel.
		Select("mis.id, mis.period, mis.records, mis.created_at, mis.updated_at").
		From(indicatorSnapshotsTable).
		Where(squirrel.Eq{"mis.period": period}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	entry, err := r.scanSnapshot(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot mensal: %w", err)
	}

	return entry, nil
}

func (r *indicatorSnapshotRepository) SaveOrUpdate(entry *domain.MonthlyIndicatorSnapshotEntry) error {
	periodStart, err := periodStartDate(entry.Period)
	if err != nil {
		return err
	}

	records := entry.Records
	if records == nil {
		records = []domain.IndicatorRecord{}
	}

	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("erro ao serializar registros para JSON: %w", err)
	}

	if entry.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar ID do snapshot: %w", err)
		}
		entry.ID = id
	}

	query := squirrel.StatementBuilder.
		Insert("monthly_indicator_snapshots").
		Columns("id", "period", "period_start", "records").
		Values(
			entry.ID,
			entry.Period,
			periodStart,
			recordsJSON,
		).
		Suffix(`
			ON CONFLICT (period) DO UPDATE SET
				records = EXCLUDED.records,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *indicatorSnapshotRepository) DeleteOlderThan(months int) (int64, error) {
	// Calcular a data de corte pelo primeiro dia do mês
	cutoffTime := r.now().AddDate(0, -months, 0)
	cutoff := time.Date(cutoffTime.Year(), cutoffTime.Month(), 1, 0, 0, 0, 0, time.UTC)

	query := squirrel.Delete("monthly_indicator_snapshots").
		Where(squirrel.Lt{"period_start": cutoff}).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

// GetAllPeriods retorna todos os períodos armazenados no formato mm-yyyy, do mais recente ao mais antigo
func (r *indicatorSnapshotRepository) GetAllPeriods() ([]string, error) {
	query, args, err := squirrel.
		Select("period").
		From("monthly_indicator_snapshots").
		OrderBy("period_start DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	periods := make([]string, 0)
	for rows.Next() {
		var period string
		if err := rows.Scan(&period); err != nil {
			return nil, fmt.Errorf("erro ao escanear período: %w", err)
		}
		periods = append(periods, period)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return periods, nil
}

func (r *indicatorSnapshotRepository) scanSnapshot(row *sql.Row) (*domain.MonthlyIndicatorSnapshotEntry, error) {
	entry := &domain.MonthlyIndicatorSnapshotEntry{}
	var recordsJSON []byte

	err := row.Scan(
		&entry.ID,
		&entry.Period,
		&recordsJSON,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Records = make([]domain.IndicatorRecord, 0)
	if recordsJSON != nil {
		if err := json.Unmarshal(recordsJSON, &entry.Records); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de records: %w", err)
		}
	}

	return entry, nil
}

// periodStartDate converte mm-yyyy para o primeiro dia do mês
func periodStartDate(period string) (time.Time, error) {
	start, err := time.Parse("01-2006", period)
	if err != nil {
		return time.Time{}, fmt.Errorf("período inválido %q: %w", period, err)
	}
	return start, nil
}
