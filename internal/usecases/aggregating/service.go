package aggregating

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
	"github.com/vfg2006/portal-indicadores-api/internal/usecases/classifying"
	"github.com/vfg2006/portal-indicadores-api/pkg/apiErrors"
)

// IndicatorQuery são os filtros de uma consulta de indicadores.
// Year e Month vazios usam o relógio do serviço como âncora.
type IndicatorQuery struct {
	SessionID   string
	Periodicity string
	Year        *int
	Month       *int
	Area        string
}

type Service struct {
	registry *Registry
	now      func() time.Time
}

func NewService(registry *Registry, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{
		registry: registry,
		now:      now,
	}
}

// GetIndicators carrega os meses da janela na sessão do cliente e agrega cada série
func (s *Service) GetIndicators(ctx context.Context, query IndicatorQuery) (*domain.IndicatorReport, error) {
	periodicity := domain.PeriodicityMonthly
	if query.Periodicity != "" {
		p, ok := domain.ParsePeriodicity(query.Periodicity)
		if !ok {
			return nil, NewIndicatorError(ErrInvalidPeriodicity, apiErrors.ErrInvalidPeriodicity, query.Periodicity)
		}
		periodicity = p
	}

	now := s.now()

	year := now.Year()
	if query.Year != nil {
		if *query.Year < 1 {
			return nil, NewIndicatorError(ErrInvalidYear, apiErrors.ErrInvalidRequest, "")
		}
		year = *query.Year
	}

	anchor := int(now.Month())
	if query.Month != nil {
		if *query.Month < 1 || *query.Month > 12 {
			return nil, NewIndicatorError(ErrInvalidMonth, apiErrors.ErrInvalidRequest, "")
		}
		anchor = *query.Month
	} else if periodicity == domain.PeriodicitySpecificMonth {
		return nil, NewIndicatorError(ErrMonthRequired, apiErrors.ErrMissingRequiredData, "month")
	}

	session, sessionID, err := s.registry.Session(query.SessionID)
	if err != nil {
		return nil, NewIndicatorError(err, apiErrors.ErrInternalServer, "")
	}

	window := WindowMonths(periodicity, anchor)
	result, err := session.Load(ctx, year, window)
	if err != nil {
		if errors.Is(err, ErrSuperseded) {
			return nil, NewIndicatorError(err, apiErrors.ErrLoadSuperseded, sessionID)
		}
		return nil, err
	}

	if len(result.FailedMonths) == len(window) && len(window) > 0 {
		logrus.WithFields(logrus.Fields{
			"session": sessionID,
			"year":    year,
			"months":  window,
		}).Warn("aggregating: nenhum mês da janela pôde ser carregado")
	}

	matcher := classifying.NewMatcher(query.Area)
	series := BuildSeries(result.Snapshots)

	indicators := make([]domain.IndicatorValue, 0, len(series))
	for _, item := range series {
		match := matcher.MatchSeries(item)
		if !match.Matched {
			continue
		}

		indicators = append(indicators, domain.IndicatorValue{
			Name:           item.Name,
			ProjectName:    item.ProjectName,
			SectorTag:      item.SectorTag,
			Value:          Aggregate(item.MonthlyValues, periodicity, anchor),
			MonthsWithData: MonthsWithData(item.MonthlyValues, periodicity, anchor),
			MatchedKeyword: match.Keyword,
			Periodicity:    periodicity,
		})
	}

	logrus.WithFields(logrus.Fields{
		"session":      sessionID,
		"periodicity":  periodicity,
		"year":         year,
		"anchor":       anchor,
		"indicators":   len(indicators),
		"failed":       len(result.FailedMonths),
		"deduplicated": result.Deduplicated,
	}).Info("aggregating: indicadores agregados")

	return &domain.IndicatorReport{
		SessionID:    sessionID,
		Year:         year,
		AnchorMonth:  anchor,
		Periodicity:  periodicity,
		Area:         matcher.Area(),
		AreaKeywords: matcher.Keywords(),
		Window:       window,
		Indicators:   indicators,
		FailedMonths: result.FailedMonths,
		Deduplicated: result.Deduplicated,
		GeneratedAt:  now,
	}, nil
}
