package periods

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
)

// BuildCatalog monta o catálogo de períodos a partir das coleções de cada categoria.
// now só é usado quando nenhum registro possui data válida.
func BuildCatalog(now time.Time, collections ...domain.TaggedRecords) *domain.PeriodCatalog {
	buckets := make(map[string]*domain.Period)
	skipped := 0

	for _, collection := range collections {
		for _, record := range collection.Records {
			ym, ok := record.YearMonth()
			if !ok {
				skipped++
				continue
			}

			key := ym.Key()
			bucket, exists := buckets[key]
			if !exists {
				bucket = &domain.Period{
					Year:   ym.Year,
					Month:  ym.Month,
					Key:    key,
					Label:  domain.PeriodLabel(ym.Year, ym.Month),
					Counts: make(map[domain.RecordCategory]int),
				}
				buckets[key] = bucket
			}

			switch collection.Category {
			case domain.CategoryReceivable:
				bucket.CountReceivable++
			case domain.CategoryPayable:
				bucket.CountPayable++
			}
			bucket.Counts[collection.Category]++
			bucket.TotalRecords++
		}
	}

	if skipped > 0 {
		logrus.WithField("skipped", skipped).Debug("periods: registros sem data válida ignorados no catálogo")
	}

	periods := make([]domain.Period, 0, len(buckets))
	for _, bucket := range buckets {
		periods = append(periods, *bucket)
	}

	sort.Slice(periods, func(i, j int) bool {
		if periods[i].Year != periods[j].Year {
			return periods[i].Year > periods[j].Year
		}
		return periods[i].Month > periods[j].Month
	})

	return &domain.PeriodCatalog{
		Years:         distinctYears(periods),
		Months:        distinctMonths(periods),
		Periods:       periods,
		DefaultPeriod: defaultPeriod(periods, now),
	}
}

func distinctYears(periods []domain.Period) []int {
	years := make([]int, 0)
	seen := make(map[int]bool)

	// periods já está ordenado por ano desc
	for _, p := range periods {
		if !seen[p.Year] {
			seen[p.Year] = true
			years = append(years, p.Year)
		}
	}

	return years
}

func distinctMonths(periods []domain.Period) []domain.MonthOption {
	seen := make(map[int]bool)
	for _, p := range periods {
		seen[p.Month] = true
	}

	months := make([]domain.MonthOption, 0, len(seen))
	for month := 1; month <= 12; month++ {
		if seen[month] {
			months = append(months, domain.MonthOption{Number: month, Name: domain.MonthName(month)})
		}
	}

	return months
}

// defaultPeriod escolhe o ano do período com mais registros; em caso de empate vence o mais recente
func defaultPeriod(periods []domain.Period, now time.Time) domain.DefaultPeriod {
	if len(periods) == 0 {
		return domain.DefaultPeriod{Year: now.Year()}
	}

	best := periods[0]
	for _, p := range periods[1:] {
		if p.TotalRecords > best.TotalRecords {
			best = p
		}
	}

	return domain.DefaultPeriod{Year: best.Year}
}
