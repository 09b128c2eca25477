// Package fetch retrieves ranking page markup over HTTP or from a saved file.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// maxPageBytes caps how much of a response body is read.
const maxPageBytes = 16 << 20

// Client implements pipeline.Source by issuing a GET for the ranking page.
type Client struct {
	url        string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a page client with the given request timeout.
func NewClient(url, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:       url,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch returns the raw markup of the ranking page.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch ranking page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ranking page: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read ranking page: %w", err)
	}

	c.logger.Debug("ranking page fetched",
		"url", c.url,
		"bytes", len(body),
		"duration", time.Since(start),
	)
	return string(body), nil
}

// FileSource implements pipeline.Source from markup saved on disk.
type FileSource struct {
	path string
}

// NewFileSource reads markup from path on every Fetch.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Fetch(_ context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("read saved page: %w", err)
	}
	return string(data), nil
}
