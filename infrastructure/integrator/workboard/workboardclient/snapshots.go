package workboardclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/pkg/errors"
)

type SnapshotParams struct {
	Year  int
	Month int
}

// GetSnapshot busca o snapshot de indicadores realizados no mês
func (c *WorkboardClient) GetSnapshot(ctx context.Context, params SnapshotParams) ([]byte, error) {
	// Construir a URL da requisição.
	endpoint, err := url.Parse(c.config.URL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL base")
	}
	endpoint.Path = path.Join(endpoint.Path, "/snapshots")

	// Adicionar parâmetros de consulta.
	query := endpoint.Query()
	query.Set("ano", strconv.Itoa(params.Year))
	query.Set("mes", strconv.Itoa(params.Month))
	endpoint.RawQuery = query.Encode()

	// Criar a requisição HTTP.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	// Adicionar cabeçalhos necessários.
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}
	req.Header.Set("Accept", "application/json")

	// Executar a requisição.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao buscar snapshot %02d/%d", params.Month, params.Year)
	}
	defer resp.Body.Close()

	// Verificar o código de status da resposta.
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requisição do snapshot %02d/%d falhou com status: %s", params.Month, params.Year, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta")
	}

	return data, nil
}
