package verification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RegistryClient looks a doctor up in the government medical registry.
type RegistryClient interface {
	Lookup(ctx context.Context, name, registrationNumber string) (*RegistryResult, error)
}

type registryClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRegistryClient creates a client for the registry lookup service.
func NewRegistryClient(baseURL string, timeout time.Duration) RegistryClient {
	return &registryClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// registryResponse is the service's wire shape. The service reports failures
// in-band via status rather than HTTP error codes.
type registryResponse struct {
	Status string          `json:"status"`
	Error  string          `json:"error,omitempty"`
	Result *RegistryResult `json:"result,omitempty"`
}

func (c *registryClient) Lookup(ctx context.Context, name, registrationNumber string) (*RegistryResult, error) {
	payload, err := json.Marshal(map[string]string{
		"name":                name,
		"registration_number": registrationNumber,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mci-check", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry lookup failed: %s", resp.Status)
	}

	var out registryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("registry lookup: invalid response: %w", err)
	}

	if out.Status != "SUCCESS" || out.Result == nil {
		if out.Error != "" {
			return nil, fmt.Errorf("registry lookup: %s", out.Error)
		}
		return nil, fmt.Errorf("registry lookup: no record found")
	}

	return out.Result, nil
}
