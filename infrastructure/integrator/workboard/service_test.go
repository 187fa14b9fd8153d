package workboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/integrator/workboard/mocks"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/integrator/workboard/workboardclient"
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestParseRows(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []domain.IndicatorRecord
	}{
		{
			name: "Linhas sob indicadores",
			body: `{"indicadores":[{"indicador":"Jovens atendidos","projeto":"Favela 3D","setor":"Territórios","realizado":"1.250,00"}]}`,
			expected: []domain.IndicatorRecord{
				{Name: "Jovens atendidos", ProjectName: "Favela 3D", SectorTag: "Territórios", Value: 1250},
			},
		},
		{
			name: "Aliases alternativos de campos",
			body: `{"items":[{"nome":"Aulas","nome_projeto":"Capoeira","area":"Esporte","valor":12.5}]}`,
			expected: []domain.IndicatorRecord{
				{Name: "Aulas", ProjectName: "Capoeira", SectorTag: "Esporte", Value: 12.5},
			},
		},
		{
			name: "Array puro e valor ausente",
			body: `[{"indicador":"Oficinas","projeto":"Cultura"}]`,
			expected: []domain.IndicatorRecord{
				{Name: "Oficinas", ProjectName: "Cultura", Value: 0},
			},
		},
		{
			name:     "Linhas sem nome e sem projeto são ignoradas",
			body:     `{"data":[{"setor":"Cultura","valor":5}]}`,
			expected: []domain.IndicatorRecord{},
		},
		{
			name:     "Formato desconhecido vira lista vazia",
			body:     `{"erro":"não autorizado"}`,
			expected: []domain.IndicatorRecord{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseRows([]byte(tt.body)))
		})
	}
}

func TestWorkboardService_FetchMonthlySnapshot(t *testing.T) {
	t.Run("Monta o snapshot do mês", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockClient(ctrl)
		client.EXPECT().
			GetSnapshot(gomock.Any(), workboardclient.SnapshotParams{Year: 2025, Month: 3}).
			Return([]byte(`{"indicadores":[{"indicador":"Atendimentos","projeto":"Favela 3D","realizado":4}]}`), nil)

		snapshot, err := New(client).FetchMonthlySnapshot(context.Background(), 2025, 3)

		require.NoError(t, err)
		assert.Equal(t, 2025, snapshot.Year)
		assert.Equal(t, 3, snapshot.Month)
		require.Len(t, snapshot.Records, 1)
		assert.Equal(t, 4.0, snapshot.Records[0].Value)
	})

	t.Run("Erro do cliente é repassado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockClient(ctrl)
		client.EXPECT().GetSnapshot(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		snapshot, err := New(client).FetchMonthlySnapshot(context.Background(), 2025, 3)

		assert.Error(t, err)
		assert.Nil(t, snapshot)
	})
}
