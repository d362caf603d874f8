// Package mocks provides in-memory implementations of the repository
// interfaces for unit testing services without a real data store.
package mocks

import (
	"sync"
)

// failures is embedded by every mock to force errors on named methods.
type failures struct {
	mu           sync.RWMutex
	shouldFailOn map[string]error
}

// SetError configures the mock to return an error for a specific method.
func (f *failures) SetError(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.shouldFailOn == nil {
		f.shouldFailOn = make(map[string]error)
	}
	f.shouldFailOn[method] = err
}

func (f *failures) failure(method string) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.shouldFailOn[method]
}
