package finance

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/integrator/erp"
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
	"github.com/vfg2006/portal-indicadores-api/internal/usecases/classifying"
	"github.com/vfg2006/portal-indicadores-api/internal/usecases/periods"
	"github.com/vfg2006/portal-indicadores-api/pkg/apiErrors"
	"github.com/vfg2006/portal-indicadores-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const noStatus = "SEM_STATUS"

// Reporter é a interface exposta para os handlers
type Reporter interface {
	// GetAvailablePeriods retorna os períodos que possuem contas a receber ou a pagar
	GetAvailablePeriods(ctx context.Context) (*domain.PeriodCatalog, error)

	// GetSummary soma as contas do período e da área pedidos
	GetSummary(ctx context.Context, criteria domain.FilterCriteria, display utils.CurrencyDisplay) (*domain.FinancialSummary, error)
}

type Service struct {
	erpService erp.Integrator
	now        func() time.Time
}

func NewService(erpService erp.Integrator, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{
		erpService: erpService,
		now:        now,
	}
}

type collections struct {
	receivables []domain.FinancialRecord
	payables    []domain.FinancialRecord
	unavailable []domain.RecordCategory
}

func (c *collections) tagged() []domain.TaggedRecords {
	return []domain.TaggedRecords{
		{Category: domain.CategoryReceivable, Records: c.receivables},
		{Category: domain.CategoryPayable, Records: c.payables},
	}
}

// load busca as duas listagens em paralelo. Uma listagem com erro vira coleção vazia;
// só falha quando as duas falham.
func (s *Service) load(ctx context.Context) (*collections, error) {
	var (
		receivables, payables     []domain.FinancialRecord
		receivableErr, payableErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		receivables, receivableErr = s.erpService.ListReceivables(ctx)
		return nil
	})
	g.Go(func() error {
		payables, payableErr = s.erpService.ListPayables(ctx)
		return nil
	})
	_ = g.Wait()

	if receivableErr != nil && payableErr != nil {
		logrus.WithError(receivableErr).Error("finance: erro ao buscar contas a receber")
		logrus.WithError(payableErr).Error("finance: erro ao buscar contas a pagar")
		return nil, NewFinanceError(ErrERPUnavailable, apiErrors.ErrExternalService, receivableErr.Error())
	}

	result := &collections{receivables: receivables, payables: payables}

	if receivableErr != nil {
		logrus.WithError(receivableErr).Warn("finance: contas a receber indisponíveis, seguindo apenas com contas a pagar")
		result.receivables = []domain.FinancialRecord{}
		result.unavailable = append(result.unavailable, domain.CategoryReceivable)
	}
	if payableErr != nil {
		logrus.WithError(payableErr).Warn("finance: contas a pagar indisponíveis, seguindo apenas com contas a receber")
		result.payables = []domain.FinancialRecord{}
		result.unavailable = append(result.unavailable, domain.CategoryPayable)
	}

	return result, nil
}

func (s *Service) GetAvailablePeriods(ctx context.Context) (*domain.PeriodCatalog, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	catalog := periods.BuildCatalog(s.now(), data.tagged()...)

	logrus.WithFields(logrus.Fields{
		"periods":      len(catalog.Periods),
		"default_year": catalog.DefaultPeriod.Year,
	}).Debug("finance: catálogo de períodos montado")

	return catalog, nil
}

func (s *Service) GetSummary(ctx context.Context, criteria domain.FilterCriteria, display utils.CurrencyDisplay) (*domain.FinancialSummary, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	matcher := classifying.NewMatcher(criteria.AreaName())

	receivables := classifying.FilterRecords(periods.Filter(data.receivables, criteria), matcher)
	payables := classifying.FilterRecords(periods.Filter(data.payables, criteria), matcher)

	totalReceivable, receivableStatus := sumByStatus(receivables)
	totalPayable, payableStatus := sumByStatus(payables)
	balance := totalReceivable.Sub(totalPayable)

	summary := &domain.FinancialSummary{
		Criteria:          criteria,
		TotalReceivable:   utils.RoundWithTwoDecimalPlace(totalReceivable),
		TotalPayable:      utils.RoundWithTwoDecimalPlace(totalPayable),
		Balance:           utils.RoundWithTwoDecimalPlace(balance),
		ReceivableCount:   len(receivables),
		PayableCount:      len(payables),
		UndatedCount:      periods.CountUndated(data.receivables) + periods.CountUndated(data.payables),
		ReceivableStatus:  receivableStatus,
		PayableStatus:     payableStatus,
		PartialData:       len(data.unavailable) > 0,
		UnavailableSource: data.unavailable,
	}

	summary.Formatted = domain.FormattedTotals{
		Receivable: display.Format(summary.TotalReceivable),
		Payable:    display.Format(summary.TotalPayable),
		Balance:    display.Format(summary.Balance),
	}

	return summary, nil
}

func sumByStatus(records []domain.FinancialRecord) (decimal.Decimal, map[string]domain.StatusTotal) {
	total := decimal.Zero
	byStatus := make(map[string]decimal.Decimal)
	counts := make(map[string]int)

	for _, record := range records {
		value := record.Amount()
		if math.IsNaN(value) || math.IsInf(value, 0) {
			value = 0
		}
		amount := decimal.NewFromFloat(value)
		total = total.Add(amount)

		status := record.Status()
		if status == "" {
			status = noStatus
		}
		byStatus[status] = byStatus[status].Add(amount)
		counts[status]++
	}

	out := make(map[string]domain.StatusTotal, len(byStatus))
	for status, sum := range byStatus {
		out[status] = domain.StatusTotal{
			Count: counts[status],
			Total: utils.RoundWithTwoDecimalPlace(sum),
		}
	}

	return total, out
}
