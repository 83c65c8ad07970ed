package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/felixgeelhaar/converge/internal/ports"
)

// Fetcher is a thread-safe test double for ports.Fetcher.
type Fetcher struct {
	mu        sync.RWMutex
	responses map[string]ports.FetchResponse
	errors    map[string]error
	requests  []string
}

// NewFetcher creates a new Fetcher mock.
func NewFetcher() *Fetcher {
	return &Fetcher{
		responses: make(map[string]ports.FetchResponse),
		errors:    make(map[string]error),
	}
}

// AddResponse registers the response for url.
func (m *Fetcher) AddResponse(url string, status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[url] = ports.FetchResponse{StatusCode: status, Body: []byte(body)}
}

// AddError registers a transport error for url.
func (m *Fetcher) AddError(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[url] = err
}

// Get returns the registered response for url.
func (m *Fetcher) Get(_ context.Context, url string) (ports.FetchResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, url)

	if err, ok := m.errors[url]; ok {
		return ports.FetchResponse{}, err
	}
	if resp, ok := m.responses[url]; ok {
		return resp, nil
	}
	return ports.FetchResponse{}, fmt.Errorf("no mock response for url: %s", url)
}

// Requests returns the requested URLs in order.
func (m *Fetcher) Requests() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.requests...)
}

// Ensure Fetcher implements ports.Fetcher.
var _ ports.Fetcher = (*Fetcher)(nil)
