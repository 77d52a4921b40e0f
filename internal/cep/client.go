// Package cep looks up Brazilian postal codes against a ViaCEP-compatible
// service to prefill address fields.
package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fusion-condo/fusion/internal/format"
	"github.com/fusion-condo/fusion/internal/logging"
)

// DefaultEndpoint is the public ViaCEP service.
const DefaultEndpoint = "https://viacep.com.br/ws"

var (
	ErrInvalidCEP = errors.New("cep must have 8 digits")
	ErrNotFound   = errors.New("cep not found")
)

// Address is the part of a ViaCEP answer the forms use.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

type Client struct {
	httpClient *http.Client
	logger     logging.Logger
	endpoint   string
}

// NewClient returns a lookup client. An empty endpoint selects
// DefaultEndpoint.
func NewClient(httpClient *http.Client, logger logging.Logger, endpoint string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		endpoint:   strings.TrimRight(endpoint, "/"),
	}
}

// Lookup resolves cep, given with or without punctuation.
func (c *Client) Lookup(ctx context.Context, cep string) (*Address, error) {
	digits := format.Digits(cep)
	if len(digits) != 8 {
		return nil, ErrInvalidCEP
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/"+digits+"/json/", nil)
	if err != nil {
		return nil, fmt.Errorf("build cep request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "cep lookup failed", "cep", digits, "error", err)
		return nil, fmt.Errorf("cep lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn(ctx, "cep service returned an error status", "cep", digits, "status", resp.StatusCode)
		return nil, fmt.Errorf("cep lookup: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read cep response: %w", err)
	}

	var answer struct {
		Address
		Erro json.RawMessage `json:"erro"`
	}
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, fmt.Errorf("decode cep response: %w", err)
	}

	// the service has answered both {"erro": true} and {"erro": "true"}
	if e := strings.Trim(string(answer.Erro), `"`); e == "true" {
		return nil, ErrNotFound
	}

	return &answer.Address, nil
}
