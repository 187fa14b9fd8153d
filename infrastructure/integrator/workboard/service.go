package workboard

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/integrator/workboard/workboardclient"
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
	"github.com/vfg2006/portal-indicadores-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Aliases das linhas do snapshot
var (
	RowCollectionAliases = []string{"indicadores", "items", "data"}
	NameFields           = []string{"indicador", "nome_indicador", "nome"}
	ProjectFields        = []string{"projeto", "nome_projeto"}
	SectorFields         = []string{"setor", "area", "tag"}
	ValueFields          = []string{"realizado", "valor", "value"}
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks
type Integrator interface {
	FetchMonthlySnapshot(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error)
}

type WorkboardService struct {
	Client workboardclient.Client
}

func New(client workboardclient.Client) Integrator {
	return &WorkboardService{
		Client: client,
	}
}

func (s *WorkboardService) FetchMonthlySnapshot(ctx context.Context, year, month int) (*domain.MonthlySnapshot, error) {
	body, err := s.Client.GetSnapshot(ctx, workboardclient.SnapshotParams{Year: year, Month: month})
	if err != nil {
		return nil, err
	}

	records := ParseRows(body)

	logrus.WithFields(logrus.Fields{
		"year":    year,
		"month":   month,
		"records": len(records),
	}).Debug("workboard: snapshot carregado")

	return &domain.MonthlySnapshot{
		Year:    year,
		Month:   month,
		Records: records,
	}, nil
}

// ParseRows desembrulha as linhas do snapshot; formatos desconhecidos viram lista vazia
func ParseRows(body []byte) []domain.IndicatorRecord {
	var node jsoniter.Any
	for _, alias := range RowCollectionAliases {
		if candidate := json.Get(body, alias); candidate.ValueType() == jsoniter.ArrayValue {
			node = candidate
			break
		}
	}
	if node == nil {
		if root := json.Get(body); root.ValueType() == jsoniter.ArrayValue {
			node = root
		}
	}
	if node == nil {
		return []domain.IndicatorRecord{}
	}

	var items []any
	node.ToVal(&items)

	records := make([]domain.IndicatorRecord, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}

		row := domain.RawRecord(fields)
		record := domain.IndicatorRecord{
			Name:        row.Text(NameFields),
			ProjectName: row.Text(ProjectFields),
			SectorTag:   row.Text(SectorFields),
		}
		if record.Name == "" && record.ProjectName == "" {
			continue
		}

		value, _ := row.First(ValueFields)
		record.Value = utils.ToNumber(value)
		records = append(records, record)
	}

	return records
}
