package mocks

import (
	"sync"

	"github.com/felixgeelhaar/converge/internal/ports"
)

// RepoIndex is a test double for ports.RepoIndex.
type RepoIndex struct {
	mu    sync.RWMutex
	repos map[string]bool
	err   error
}

// NewRepoIndex creates a RepoIndex that knows the given repository URLs.
func NewRepoIndex(urls ...string) *RepoIndex {
	r := &RepoIndex{repos: make(map[string]bool)}
	for _, u := range urls {
		r.repos[u] = true
	}
	return r
}

// SetError makes every lookup fail with err.
func (r *RepoIndex) SetError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// HasRepo reports whether url was registered.
func (r *RepoIndex) HasRepo(url string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return false, r.err
	}
	return r.repos[url], nil
}

// Ensure RepoIndex implements ports.RepoIndex.
var _ ports.RepoIndex = (*RepoIndex)(nil)
