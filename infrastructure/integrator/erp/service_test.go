package erp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/integrator/erp/erpclient"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/integrator/erp/mocks"
	"github.com/vfg2006/portal-indicadores-api/internal/config"
	"go.uber.org/mock/gomock"
)

func TestUnwrapCollection(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		aliases       []string
		expectedCount int
	}{
		{
			name:          "Coleção sob a chave principal",
			body:          `{"pagina":1,"conta_receber_cadastro":[{"valor_documento":10},{"valor_documento":20}]}`,
			aliases:       ReceivableCollectionAliases,
			expectedCount: 2,
		},
		{
			name:          "Coleção sob a chave alternativa",
			body:          `{"lista":[{"valor":10}]}`,
			aliases:       PayableCollectionAliases,
			expectedCount: 1,
		},
		{
			name:          "Array puro",
			body:          `[{"valor":10},{"valor":20},{"valor":30}]`,
			aliases:       ReceivableCollectionAliases,
			expectedCount: 3,
		},
		{
			name:          "Itens que não são objetos são descartados",
			body:          `{"lista":[{"valor":10}, 5, "texto", null]}`,
			aliases:       PayableCollectionAliases,
			expectedCount: 1,
		},
		{
			name:          "Formato desconhecido vira coleção vazia",
			body:          `{"faultstring":"ERROR: Não existem registros"}`,
			aliases:       ReceivableCollectionAliases,
			expectedCount: 0,
		},
		{
			name:          "Chave com valor que não é array é ignorada",
			body:          `{"conta_receber_cadastro":{"valor":1}}`,
			aliases:       ReceivableCollectionAliases,
			expectedCount: 0,
		},
		{
			name:          "JSON inválido vira coleção vazia",
			body:          `<html>erro</html>`,
			aliases:       ReceivableCollectionAliases,
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := UnwrapCollection([]byte(tt.body), tt.aliases)

			assert.NotNil(t, records)
			assert.Len(t, records, tt.expectedCount)
		})
	}
}

func TestUnwrapCollection_Fields(t *testing.T) {
	body := `{"conta_receber_cadastro":[{"data_emissao":"15/03/2025","valor_documento":"1.234,56","status_titulo":"RECEBIDO"}]}`

	records := UnwrapCollection([]byte(body), ReceivableCollectionAliases)

	require.Len(t, records, 1)
	assert.InDelta(t, 1234.56, records[0].Amount(), 1e-9)
	assert.Equal(t, "RECEBIDO", records[0].Status())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages([]byte(`{"total_de_paginas":3}`)))
	assert.Equal(t, 1, TotalPages([]byte(`{"total_de_paginas":0}`)))
	assert.Equal(t, 1, TotalPages([]byte(`[]`)))
	assert.Equal(t, 1, TotalPages([]byte(`{"total_de_paginas":"3"}`)))
}

func TestERPService_ListReceivables(t *testing.T) {
	cfg := &config.ERP{PageSize: 2, MaxPages: 5}

	t.Run("Percorre todas as páginas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockClient(ctrl)
		client.EXPECT().
			ListAccounts(gomock.Any(), erpclient.ReceivablesResource, erpclient.ListAccountsParams{Page: 1, PageSize: 2}).
			Return([]byte(`{"total_de_paginas":2,"conta_receber_cadastro":[{"valor":1},{"valor":2}]}`), nil)
		client.EXPECT().
			ListAccounts(gomock.Any(), erpclient.ReceivablesResource, erpclient.ListAccountsParams{Page: 2, PageSize: 2}).
			Return([]byte(`{"total_de_paginas":2,"conta_receber_cadastro":[{"valor":3}]}`), nil)

		service := New(cfg, client)
		records, err := service.ListReceivables(context.Background())

		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("Respeita o limite de páginas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockClient(ctrl)
		client.EXPECT().
			ListAccounts(gomock.Any(), erpclient.PayablesResource, gomock.Any()).
			Return([]byte(`{"total_de_paginas":10,"lista":[{"valor":1}]}`), nil).
			Times(1)

		service := New(&config.ERP{MaxPages: 1}, client)
		records, err := service.ListPayables(context.Background())

		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("Erro em uma página falha a listagem", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockClient(ctrl)
		client.EXPECT().
			ListAccounts(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("status 500"))

		service := New(cfg, client)
		records, err := service.ListReceivables(context.Background())

		assert.Error(t, err)
		assert.Nil(t, records)
	})

	t.Run("Nova tentativa recupera uma falha temporária", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockClient(ctrl)
		gomock.InOrder(
			client.EXPECT().
				ListAccounts(gomock.Any(), erpclient.ReceivablesResource, erpclient.ListAccountsParams{Page: 1, PageSize: 2}).
				Return(nil, errors.New("status 503")),
			client.EXPECT().
				ListAccounts(gomock.Any(), erpclient.ReceivablesResource, erpclient.ListAccountsParams{Page: 1, PageSize: 2}).
				Return([]byte(`{"total_de_paginas":1,"conta_receber_cadastro":[{"valor":1},{"valor":2}]}`), nil),
		)

		service := New(&config.ERP{PageSize: 2, MaxPages: 5, MaxRetries: 2}, client)
		records, err := service.ListReceivables(context.Background())

		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("Desiste após esgotar as tentativas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockClient(ctrl)
		client.EXPECT().
			ListAccounts(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("status 500")).
			Times(3)

		service := New(&config.ERP{PageSize: 2, MaxRetries: 2}, client)
		records, err := service.ListPayables(context.Background())

		assert.EqualError(t, err, "status 500")
		assert.Nil(t, records)
	})

	t.Run("Contexto cancelado interrompe as tentativas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, cancel := context.WithCancel(context.Background())
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().
			ListAccounts(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, erpclient.Resource, erpclient.ListAccountsParams) ([]byte, error) {
				cancel()
				return nil, errors.New("status 502")
			}).
			Times(1)

		service := New(&config.ERP{MaxRetries: 3, RetryDelay: time.Minute}, client)
		_, err := service.ListReceivables(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
