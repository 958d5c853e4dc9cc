// Package storage talks to the object storage collaborator over its REST
// API. Documents are PDF blobs addressed by "<bucket>/<path>" keys.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const objectMarker = "/storage/v1/object/"

// Service is the object storage contract used by the rest of the app.
type Service interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
	Download(ctx context.Context, bucket, path string) ([]byte, error)
	SignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) (string, error)
}

type client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a storage client against the given base URL using the
// service-role key for authorization.
func NewClient(baseURL, serviceKey string) Service {
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ResolveKey turns a stored document reference into a storage key. References
// may be bare keys or full public URLs containing the object marker; for URLs
// the key is the part between the marker and the query string.
func ResolveKey(ref string) string {
	if !strings.Contains(ref, objectMarker) {
		return ref
	}
	parts := strings.SplitN(ref, objectMarker, 2)
	key := parts[1]
	if i := strings.Index(key, "?"); i >= 0 {
		key = key[:i]
	}
	return key
}

// SplitKey separates a "<bucket>/<path>" key into its bucket and object path.
func SplitKey(key string) (bucket, path string) {
	parts := strings.SplitN(key, "/", 2)
	if len(parts) < 2 {
		return key, ""
	}
	return parts[0], parts[1]
}

func (c *client) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	url := fmt.Sprintf("%s%s%s/%s", c.baseURL, objectMarker, bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storage upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("storage upload failed: %s: %s", resp.Status, string(body))
	}
	return nil
}

func (c *client) Download(ctx context.Context, bucket, path string) ([]byte, error) {
	url := fmt.Sprintf("%s%s%s/%s", c.baseURL, objectMarker, bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storage download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storage download failed: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (c *client) SignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", c.baseURL, bucket, path)
	payload, _ := json.Marshal(map[string]int{"expiresIn": int(expiresIn.Seconds())})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage sign failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage sign failed: %s", resp.Status)
	}

	var out struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("storage sign: invalid response: %w", err)
	}
	return c.baseURL + out.SignedURL, nil
}
