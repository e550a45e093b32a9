package services

import (
	"io"

	"go.uber.org/zap"

	"github.com/KirkDiggler/spellbook/internal/clients/dnd5e"
	"github.com/KirkDiggler/spellbook/internal/events"
	"github.com/KirkDiggler/spellbook/internal/repositories/catalog"
	catalogService "github.com/KirkDiggler/spellbook/internal/services/catalog"
	spellbookService "github.com/KirkDiggler/spellbook/internal/services/spellbook"
)

// Provider holds all service instances
type Provider struct {
	CatalogService   catalogService.Service
	SpellbookService spellbookService.Service
	EventBus         *events.Bus
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	SRDClient         dnd5e.Client
	CatalogRepository catalog.Repository
	EventBus          *events.Bus
	Output            io.Writer
	Logger            *zap.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil {
		cfg = &ProviderConfig{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Use in-memory repository if none provided
	catalogRepo := cfg.CatalogRepository
	if catalogRepo == nil {
		catalogRepo = catalog.NewInMemoryRepository()
	}

	bus := cfg.EventBus
	if bus == nil {
		bus = events.NewBus(logger.Named("events"))
	}

	catSvc := catalogService.NewService(&catalogService.ServiceConfig{
		Repository: catalogRepo,
		SRDClient:  cfg.SRDClient,
		Logger:     logger.Named("catalog"),
	})

	// Spellbooks learn from the same catalog repository
	bookSvc := spellbookService.NewService(&spellbookService.ServiceConfig{
		Catalog:  catalogRepo,
		EventBus: bus,
		Output:   cfg.Output,
		Logger:   logger.Named("spellbook"),
	})

	return &Provider{
		CatalogService:   catSvc,
		SpellbookService: bookSvc,
		EventBus:         bus,
	}
}
