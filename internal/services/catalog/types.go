package catalog

import (
	"context"
	"io"

	"github.com/KirkDiggler/spellbook/internal/repositories/catalog"
)

// Service manages the spell catalog books learn from
type Service interface {
	// List returns every definition sorted by key
	List(ctx context.Context) ([]*catalog.Definition, error)

	// Get retrieves a definition by key
	Get(ctx context.Context, key string) (*catalog.Definition, error)

	// Add validates and stores a definition, deriving its key from the name when missing
	Add(ctx context.Context, def *catalog.Definition) error

	// Remove deletes a definition
	Remove(ctx context.Context, key string) error

	// SeedDefaults stores the built-in starter spells
	SeedDefaults(ctx context.Context) (int, error)

	// LoadYAML stores every definition found in a YAML spell file
	LoadYAML(ctx context.Context, r io.Reader, source string) (int, error)

	// ImportSRD pulls damage spells for the given classes from the D&D 5e SRD
	ImportSRD(ctx context.Context, classes []string) (*ImportResult, error)
}

// ImportResult summarizes an SRD import
type ImportResult struct {
	Imported    int
	Skipped     int
	SkippedKeys []string
}
