package aggregating

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
)

type seriesKey struct {
	name    string
	project string
	sector  string
}

// BuildSeries agrupa as linhas dos snapshots mensais em séries por indicador.
// Linhas repetidas do mesmo indicador no mesmo mês são somadas.
func BuildSeries(snapshots []domain.MonthlySnapshot) []domain.IndicatorSeries {
	index := make(map[seriesKey]int)
	series := make([]domain.IndicatorSeries, 0)
	sums := make([]map[int]decimal.Decimal, 0)

	for _, snapshot := range snapshots {
		if snapshot.Month < 1 || snapshot.Month > 12 {
			continue
		}

		for _, record := range snapshot.Records {
			if !isFinite(record.Value) {
				continue
			}

			key := seriesKey{name: record.Name, project: record.ProjectName, sector: record.SectorTag}
			i, ok := index[key]
			if !ok {
				i = len(series)
				index[key] = i
				series = append(series, domain.IndicatorSeries{
					Name:          record.Name,
					ProjectName:   record.ProjectName,
					SectorTag:     record.SectorTag,
					MonthlyValues: make(map[int]float64),
				})
				sums = append(sums, make(map[int]decimal.Decimal))
			}

			sums[i][snapshot.Month] = sums[i][snapshot.Month].Add(decimal.NewFromFloat(record.Value))
		}
	}

	for i := range series {
		for month, total := range sums[i] {
			series[i].MonthlyValues[month] = total.InexactFloat64()
		}
	}

	sort.SliceStable(series, func(i, j int) bool {
		if series[i].Name != series[j].Name {
			return series[i].Name < series[j].Name
		}
		if series[i].ProjectName != series[j].ProjectName {
			return series[i].ProjectName < series[j].ProjectName
		}
		return series[i].SectorTag < series[j].SectorTag
	})

	return series
}
