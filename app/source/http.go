package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type HTTP struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewHTTP(baseURL string, httpClient *http.Client, userAgent string, timeout time.Duration) *HTTP {
	return &HTTP{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (h *HTTP) Fetch(ctx context.Context, name string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	fileURL := h.baseURL + "/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", fileURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func (h *HTTP) Close() error {
	h.httpClient.CloseIdleConnections()
	return nil
}
