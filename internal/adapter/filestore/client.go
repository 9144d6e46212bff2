package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"
)

// Client exposes operations against the object storage service.
type Client interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error)
}

// HTTPClient implements Client over the storage service HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors the JSON payload returned after a successful upload.
type response struct {
	URL string `json:"url"`
}

// NewHTTPClient creates the storage client with a default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse file store url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("file store url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Upload stores one object under objectPath and returns its public URL. The
// object path already carries the order namespace and the sanitized filename.
func (c *HTTPClient) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/objects/", objectPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint.String(), bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		var data response
		if err := json.Unmarshal(body, &data); err != nil {
			return "", err
		}
		if data.URL == "" {
			return "", fmt.Errorf("file store returned no object url")
		}
		return data.URL, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("file store request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", fmt.Errorf("file store error: %s", resp.Status)
	}
}
