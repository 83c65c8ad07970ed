// Package httpfetch downloads remote package archives over HTTP.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/felixgeelhaar/converge/internal/ports"
)

// Client implements ports.Fetcher with net/http.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Client. A nil httpClient uses http.DefaultClient.
// No timeout is set: downloads block until the server finishes or the context ends.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

// Get issues a single GET and reads the full body, whatever the status.
func (c *Client) Get(ctx context.Context, url string) (ports.FetchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.FetchResponse{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.FetchResponse{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.FetchResponse{}, fmt.Errorf("read response body: %w", err)
	}

	return ports.FetchResponse{StatusCode: resp.StatusCode, Body: body}, nil
}

// Ensure Client implements ports.Fetcher.
var _ ports.Fetcher = (*Client)(nil)
