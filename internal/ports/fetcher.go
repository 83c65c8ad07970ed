package ports

import "context"

// FetchResponse is the outcome of an HTTP GET.
type FetchResponse struct {
	StatusCode int
	Body       []byte
}

// OK returns true for a 200 response.
func (r FetchResponse) OK() bool {
	return r.StatusCode == 200
}

// Fetcher downloads remote content.
// Transport failures are errors; any HTTP status is returned in FetchResponse.
type Fetcher interface {
	Get(ctx context.Context, url string) (FetchResponse, error)
}
