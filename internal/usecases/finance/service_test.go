package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/integrator/erp/mocks"
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
	"github.com/vfg2006/portal-indicadores-api/pkg/apiErrors"
	"github.com/vfg2006/portal-indicadores-api/pkg/utils"
	"go.uber.org/mock/gomock"
)

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

var (
	receivablesMock = []domain.FinancialRecord{
		{"data_emissao": "15/03/2025", "valor_documento": "R$ 1.000,50", "status_titulo": "RECEBIDO", "descricao_projeto": "Favela 3D"},
		{"data_emissao": "20/03/2025", "valor_documento": 500.0, "status_titulo": "A VENCER", "descricao_projeto": "Programa Cultura"},
		{"data_emissao": "10/01/2025", "valor_documento": 250, "status_titulo": "RECEBIDO", "descricao_projeto": "Favela 3D"},
		{"data_emissao": "10/01/2024", "valor_documento": 9999, "descricao_projeto": "Favela 3D"},
		{"valor_documento": 777},
	}
	payablesMock = []domain.FinancialRecord{
		{"data_vencimento": "20/03/2025", "valor": "300,25", "status": "PAGO", "codigo_projeto": "F3D"},
		{"data_vencimento": "25/03/2025", "valor": "abc", "descricao_projeto": "Programa Cultura"},
	}
)

func TestService_GetSummary(t *testing.T) {
	visible := utils.CurrencyDisplay{Visible: true}

	tests := []struct {
		name     string
		criteria domain.FilterCriteria
		display  utils.CurrencyDisplay
		setup    func(*mocks.MockIntegrator)
		validate func(t *testing.T, summary *domain.FinancialSummary, err error)
	}{
		{
			name:     "Soma o mês pedido e agrupa por status",
			criteria: domain.FilterCriteria{Year: intPtr(2025), Month: intPtr(3)},
			display:  visible,
			setup: func(erp *mocks.MockIntegrator) {
				erp.EXPECT().ListReceivables(gomock.Any()).Return(receivablesMock, nil)
				erp.EXPECT().ListPayables(gomock.Any()).Return(payablesMock, nil)
			},
			validate: func(t *testing.T, summary *domain.FinancialSummary, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1500.5, summary.TotalReceivable)
				assert.Equal(t, 300.25, summary.TotalPayable)
				assert.Equal(t, 1200.25, summary.Balance)
				assert.Equal(t, 2, summary.ReceivableCount)
				assert.Equal(t, 2, summary.PayableCount)
				assert.Equal(t, 1, summary.UndatedCount)
				assert.Equal(t, domain.StatusTotal{Count: 1, Total: 1000.5}, summary.ReceivableStatus["RECEBIDO"])
				assert.Equal(t, domain.StatusTotal{Count: 1, Total: 0}, summary.PayableStatus["SEM_STATUS"])
				assert.Equal(t, "R$ 1.500,5", summary.Formatted.Receivable)
				assert.False(t, summary.PartialData)
			},
		},
		{
			name:     "Ano sem mês soma todos os meses do ano",
			criteria: domain.FilterCriteria{Year: intPtr(2025)},
			display:  visible,
			setup: func(erp *mocks.MockIntegrator) {
				erp.EXPECT().ListReceivables(gomock.Any()).Return(receivablesMock, nil)
				erp.EXPECT().ListPayables(gomock.Any()).Return(payablesMock, nil)
			},
			validate: func(t *testing.T, summary *domain.FinancialSummary, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1750.5, summary.TotalReceivable)
				assert.Equal(t, 3, summary.ReceivableCount)
			},
		},
		{
			name:     "Filtro por área usa código e descrição do projeto",
			criteria: domain.FilterCriteria{Year: intPtr(2025), Area: strPtr("favela")},
			display:  utils.CurrencyDisplay{Visible: true, Compact: true},
			setup: func(erp *mocks.MockIntegrator) {
				erp.EXPECT().ListReceivables(gomock.Any()).Return(receivablesMock, nil)
				erp.EXPECT().ListPayables(gomock.Any()).Return(payablesMock, nil)
			},
			validate: func(t *testing.T, summary *domain.FinancialSummary, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1250.5, summary.TotalReceivable)
				assert.Equal(t, 300.25, summary.TotalPayable)
				assert.Equal(t, 1, summary.PayableCount)
				assert.Equal(t, "R$ 1K", summary.Formatted.Receivable)
			},
		},
		{
			name:     "Valores ocultos são mascarados",
			criteria: domain.FilterCriteria{},
			display:  utils.CurrencyDisplay{Visible: false},
			setup: func(erp *mocks.MockIntegrator) {
				erp.EXPECT().ListReceivables(gomock.Any()).Return(receivablesMock, nil)
				erp.EXPECT().ListPayables(gomock.Any()).Return(payablesMock, nil)
			},
			validate: func(t *testing.T, summary *domain.FinancialSummary, err error) {
				require.NoError(t, err)
				assert.Equal(t, utils.MaskedValue, summary.Formatted.Receivable)
				assert.Equal(t, utils.MaskedValue, summary.Formatted.Payable)
				assert.Equal(t, utils.MaskedValue, summary.Formatted.Balance)
			},
		},
		{
			name:     "Falha em uma listagem segue com a outra",
			criteria: domain.FilterCriteria{Year: intPtr(2025)},
			display:  visible,
			setup: func(erp *mocks.MockIntegrator) {
				erp.EXPECT().ListReceivables(gomock.Any()).Return(nil, errors.New("timeout"))
				erp.EXPECT().ListPayables(gomock.Any()).Return(payablesMock, nil)
			},
			validate: func(t *testing.T, summary *domain.FinancialSummary, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0.0, summary.TotalReceivable)
				assert.Equal(t, 300.25, summary.TotalPayable)
				assert.True(t, summary.PartialData)
				assert.Equal(t, []domain.RecordCategory{domain.CategoryReceivable}, summary.UnavailableSource)
			},
		},
		{
			name:     "Falha nas duas listagens retorna erro",
			criteria: domain.FilterCriteria{},
			display:  visible,
			setup: func(erp *mocks.MockIntegrator) {
				erp.EXPECT().ListReceivables(gomock.Any()).Return(nil, errors.New("timeout"))
				erp.EXPECT().ListPayables(gomock.Any()).Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, summary *domain.FinancialSummary, err error) {
				assert.Nil(t, summary)
				assert.ErrorIs(t, err, ErrERPUnavailable)

				var financeErr *FinanceError
				require.True(t, errors.As(err, &financeErr))
				assert.Equal(t, apiErrors.ErrExternalService, financeErr.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			erpService := mocks.NewMockIntegrator(ctrl)
			tt.setup(erpService)

			service := NewService(erpService, time.Now)
			summary, err := service.GetSummary(context.Background(), tt.criteria, tt.display)

			tt.validate(t, summary, err)
		})
	}
}

func TestService_GetAvailablePeriods(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	erpService := mocks.NewMockIntegrator(ctrl)
	erpService.EXPECT().ListReceivables(gomock.Any()).Return(receivablesMock, nil)
	erpService.EXPECT().ListPayables(gomock.Any()).Return(payablesMock, nil)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	service := NewService(erpService, func() time.Time { return now })

	catalog, err := service.GetAvailablePeriods(context.Background())

	require.NoError(t, err)
	require.Len(t, catalog.Periods, 3)

	march := catalog.Periods[0]
	assert.Equal(t, "2025-03", march.Key)
	assert.Equal(t, 2, march.CountReceivable)
	assert.Equal(t, 2, march.CountPayable)
	assert.Equal(t, 4, march.TotalRecords)

	assert.Equal(t, []int{2025, 2024}, catalog.Years)
	assert.Equal(t, 2025, catalog.DefaultPeriod.Year)
	assert.Nil(t, catalog.DefaultPeriod.Month)
}
