package catalog

import (
	"context"
	"sort"
	"sync"

	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the catalog repository
// Used when no Redis is configured and in tests
type InMemoryRepository struct {
	mu          sync.RWMutex
	definitions map[string]*Definition
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		definitions: make(map[string]*Definition),
	}
}

// Put stores a copy of the definition
func (r *InMemoryRepository) Put(ctx context.Context, def *Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.definitions[def.Key] = copyDefinition(def)
	return nil
}

// Get retrieves a definition by key
func (r *InMemoryRepository) Get(ctx context.Context, key string) (*Definition, error) {
	if key == "" {
		return nil, dnderr.InvalidArgument("spell key is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.definitions[key]
	if !exists {
		return nil, dnderr.NotFoundf("spell '%s' not found in catalog", key).
			WithMeta("key", key)
	}

	return copyDefinition(def), nil
}

// List returns every definition sorted by key
func (r *InMemoryRepository) List(ctx context.Context) ([]*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Definition, 0, len(r.definitions))
	for _, def := range r.definitions {
		result = append(result, copyDefinition(def))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result, nil
}

// Delete removes a definition
func (r *InMemoryRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return dnderr.InvalidArgument("spell key is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[key]; !exists {
		return dnderr.NotFoundf("spell '%s' not found in catalog", key).
			WithMeta("key", key)
	}

	delete(r.definitions, key)
	return nil
}
