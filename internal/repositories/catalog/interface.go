package catalog

//go:generate mockgen -destination=mock/mock_repository.go -package=mockcatalog -source=interface.go

import (
	"context"
)

// Repository stores the spell definitions books can learn from
type Repository interface {
	// Put creates or replaces a definition under its key
	Put(ctx context.Context, def *Definition) error

	// Get retrieves a definition by key
	Get(ctx context.Context, key string) (*Definition, error)

	// List returns every definition sorted by key
	List(ctx context.Context) ([]*Definition, error)

	// Delete removes a definition
	Delete(ctx context.Context, key string) error
}
