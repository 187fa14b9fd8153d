package erp

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portal-indicadores-api/infrastructure/integrator/erp/erpclient"
	"github.com/vfg2006/portal-indicadores-api/internal/config"
	"github.com/vfg2006/portal-indicadores-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Chaves onde cada listagem pode vir aninhada; o array puro é tentado por último
var (
	ReceivableCollectionAliases = []string{"conta_receber_cadastro", "lista"}
	PayableCollectionAliases    = []string{"conta_pagar_cadastro", "lista"}
)

const defaultPageSize = 500

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks
type Integrator interface {
	ListReceivables(ctx context.Context) ([]domain.FinancialRecord, error)
	ListPayables(ctx context.Context) ([]domain.FinancialRecord, error)
}

type ERPService struct {
	cfg    *config.ERP
	Client erpclient.Client
}

func New(cfg *config.ERP, client erpclient.Client) Integrator {
	return &ERPService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *ERPService) ListReceivables(ctx context.Context) ([]domain.FinancialRecord, error) {
	return s.listAll(ctx, erpclient.ReceivablesResource, ReceivableCollectionAliases)
}

func (s *ERPService) ListPayables(ctx context.Context) ([]domain.FinancialRecord, error) {
	return s.listAll(ctx, erpclient.PayablesResource, PayableCollectionAliases)
}

// listAll percorre as páginas até total_de_paginas ou até o limite configurado
func (s *ERPService) listAll(ctx context.Context, resource erpclient.Resource, aliases []string) ([]domain.FinancialRecord, error) {
	pageSize := s.cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	maxPages := s.cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}

	records := make([]domain.FinancialRecord, 0)
	for page := 1; ; page++ {
		body, err := s.listPage(ctx, resource, erpclient.ListAccountsParams{
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			return nil, err
		}

		records = append(records, UnwrapCollection(body, aliases)...)

		totalPages := TotalPages(body)
		if page >= totalPages {
			break
		}
		if page >= maxPages {
			logrus.WithFields(logrus.Fields{
				"call":        resource.Call,
				"total_pages": totalPages,
				"max_pages":   maxPages,
			}).Warn("erp: limite de páginas atingido, listagem incompleta")
			break
		}
	}

	logrus.WithFields(logrus.Fields{
		"call":    resource.Call,
		"records": len(records),
	}).Debug("erp: listagem carregada")

	return records, nil
}

// listPage busca uma página com até MaxRetries novas tentativas e espera linear entre elas
func (s *ERPService) listPage(ctx context.Context, resource erpclient.Resource, params erpclient.ListAccountsParams) ([]byte, error) {
	maxRetries := s.cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := s.Client.ListAccounts(ctx, resource, params)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt < maxRetries {
			logrus.WithError(err).WithFields(logrus.Fields{
				"call":    resource.Call,
				"page":    params.Page,
				"attempt": attempt + 1,
			}).Warn("erp: falha ao buscar página, tentando de novo")

			if s.cfg.RetryDelay > 0 {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(s.cfg.RetryDelay * time.Duration(attempt+1)):
				}
			}
		}
	}

	return nil, lastErr
}

// UnwrapCollection tenta cada alias na ordem e depois o array puro. Qualquer outro formato
// vira uma coleção vazia.
func UnwrapCollection(body []byte, aliases []string) []domain.FinancialRecord {
	for _, alias := range aliases {
		if node := json.Get(body, alias); node.ValueType() == jsoniter.ArrayValue {
			return decodeRecords(node)
		}
	}

	if root := json.Get(body); root.ValueType() == jsoniter.ArrayValue {
		return decodeRecords(root)
	}

	return []domain.FinancialRecord{}
}

// TotalPages lê total_de_paginas; respostas sem paginação contam como uma página
func TotalPages(body []byte) int {
	node := json.Get(body, "total_de_paginas")
	if node.ValueType() != jsoniter.NumberValue {
		return 1
	}

	if total := node.ToInt(); total > 0 {
		return total
	}
	return 1
}

func decodeRecords(node jsoniter.Any) []domain.FinancialRecord {
	var items []any
	node.ToVal(&items)

	records := make([]domain.FinancialRecord, 0, len(items))
	for _, item := range items {
		if fields, ok := item.(map[string]any); ok {
			records = append(records, domain.FinancialRecord(fields))
		}
	}

	return records
}
