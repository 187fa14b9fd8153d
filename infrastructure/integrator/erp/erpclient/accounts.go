package erpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Resource identifica uma listagem de contas no ERP
type Resource struct {
	Path string
	Call string
}

var (
	ReceivablesResource = Resource{Path: "/financas/contareceber/", Call: "ListarContasReceber"}
	PayablesResource    = Resource{Path: "/financas/contapagar/", Call: "ListarContasPagar"}
)

type ListAccountsParams struct {
	Page     int
	PageSize int
}

type listAccountsRequest struct {
	Call      string         `json:"call"`
	AppKey    string         `json:"app_key"`
	AppSecret string         `json:"app_secret"`
	Param     []listPageArgs `json:"param"`
}

type listPageArgs struct {
	Page           int    `json:"pagina"`
	RecordsPerPage int    `json:"registros_por_pagina"`
	ImportedOnly   string `json:"apenas_importado_api"`
}

// ListAccounts devolve o corpo bruto de uma página da listagem. O formato varia entre versões
// da API, por isso a interpretação fica com o serviço.
func (c *ERPClient) ListAccounts(ctx context.Context, resource Resource, params ListAccountsParams) ([]byte, error) {
	// Construir a URL da requisição.
	endpoint, err := url.Parse(c.config.URL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL base")
	}
	endpoint.Path = path.Join(endpoint.Path, resource.Path) + "/"

	body, err := json.Marshal(listAccountsRequest{
		Call:      resource.Call,
		AppKey:    c.config.AppKey,
		AppSecret: c.config.AppSecret,
		Param: []listPageArgs{{
			Page:           params.Page,
			RecordsPerPage: params.PageSize,
			ImportedOnly:   "N",
		}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar a requisição")
	}

	// Criar a requisição HTTP.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// Executar a requisição.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao executar a requisição %s", resource.Call)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta")
	}

	// Verificar o código de status da resposta.
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requisição %s falhou com status: %s", resource.Call, resp.Status)
	}

	return data, nil
}
