package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/yuma/pkg/errors"
)

// Registry is a generic, thread-safe registry for storing and retrieving items by key
type Registry[K comparable, T any] interface {
	// Register adds an item to the registry
	Register(key K, item T) error

	// Get retrieves an item from the registry
	Get(key K) (T, error)

	// Load returns the item for key, creating it with factory on first use.
	// The factory runs at most once per key; a failed factory is not cached.
	Load(key K, factory func() (T, error)) (T, error)

	// Keys returns all registered keys, sorted by their string form
	Keys() []K

	// Has checks if an item is registered
	Has(key K) bool

	// Count returns the number of registered items
	Count() int
}

type registry[K comparable, T any] struct {
	mu    sync.RWMutex
	items map[K]T
}

// New creates a new Registry instance
func New[K comparable, T any]() Registry[K, T] {
	return &registry[K, T]{
		items: make(map[K]T),
	}
}

// Register adds an item to the registry
func (r *registry[K, T]) Register(key K, item T) error {
	var zero K
	if key == zero {
		return errors.New(errors.ErrInvalidInput, "registry key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "item '%v' is already registered", key)
	}

	r.items[key] = item
	return nil
}

// Get retrieves an item from the registry
func (r *registry[K, T]) Get(key K) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[key]
	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "item '%v' not found in registry", key)
	}

	return item, nil
}

// Load returns the cached item or creates it under the write lock
func (r *registry[K, T]) Load(key K, factory func() (T, error)) (T, error) {
	r.mu.RLock()
	item, exists := r.items[key]
	r.mu.RUnlock()
	if exists {
		return item, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have won the race
	if item, exists := r.items[key]; exists {
		return item, nil
	}

	item, err := factory()
	if err != nil {
		var zero T
		return zero, err
	}
	r.items[key] = item
	return item, nil
}

// Keys returns all registered keys in sorted order
func (r *registry[K, T]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, 0, len(r.items))
	for key := range r.items {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}

// Has checks if an item is registered
func (r *registry[K, T]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[key]
	return exists
}

// Count returns the number of registered items
func (r *registry[K, T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// MustRegister registers an item and panics if registration fails
// This is useful for init() functions where registration errors are programming errors
func MustRegister[K comparable, T any](reg Registry[K, T], key K, item T) {
	if err := reg.Register(key, item); err != nil {
		panic(fmt.Sprintf("failed to register %v: %v", key, err))
	}
}
