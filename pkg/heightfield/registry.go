package heightfield

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownHandle is returned for a handle that was never issued or has
// already been released
var ErrUnknownHandle = errors.New("unknown height field handle")

// Handle identifies a height field held by a Registry. Handles are never
// reused within one registry and the zero Handle is never issued.
type Handle uint32

// Registry owns height fields on behalf of callers that should only hold a
// stable integer, such as a host environment across a foreign boundary.
type Registry struct {
	mu     sync.RWMutex
	next   Handle
	fields map[Handle]*HeightField
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		next:   1,
		fields: make(map[Handle]*HeightField),
	}
}

// Create builds a height field with New and stores it under a fresh handle
func (r *Registry) Create(numLevels int, blockSize float64, sampler Sampler, colors ColorMapper) (Handle, error) {
	hf, err := New(numLevels, blockSize, sampler, colors)
	if err != nil {
		return 0, err
	}
	return r.Add(hf), nil
}

// Add stores an existing height field and returns its handle
func (r *Registry) Add(hf *HeightField) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.next
	r.next++
	r.fields[h] = hf
	return h
}

// Get returns the height field behind a handle
func (r *Registry) Get(h Handle) (*HeightField, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hf, ok := r.fields[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	return hf, nil
}

// Release drops the registry's reference to a height field
func (r *Registry) Release(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.fields[h]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	delete(r.fields, h)
	return nil
}

// Len returns the number of live height fields
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.fields)
}
