package catalog

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/spellbook/internal/clients/dnd5e"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
	"github.com/KirkDiggler/spellbook/internal/repositories/catalog"
)

type service struct {
	repository catalog.Repository
	srdClient  dnd5e.Client
	logger     *zap.Logger
}

// ServiceConfig holds configuration for the catalog service
type ServiceConfig struct {
	Repository catalog.Repository
	SRDClient  dnd5e.Client // optional, only ImportSRD needs it
	Logger     *zap.Logger
}

// NewService creates a new catalog service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		repository: cfg.Repository,
		srdClient:  cfg.SRDClient,
		logger:     logger,
	}
}

func (s *service) List(ctx context.Context) ([]*catalog.Definition, error) {
	defs, err := s.repository.List(ctx)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list spell catalog")
	}
	return defs, nil
}

func (s *service) Get(ctx context.Context, key string) (*catalog.Definition, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, dnderr.InvalidArgument("spell key is required")
	}
	return s.repository.Get(ctx, key)
}

func (s *service) Add(ctx context.Context, def *catalog.Definition) error {
	if def == nil {
		return dnderr.InvalidArgument("definition cannot be nil")
	}
	if def.Key == "" {
		def.Key = catalog.KeyFor(def.Name)
	}
	if err := def.Validate(); err != nil {
		return err
	}

	if err := s.repository.Put(ctx, def); err != nil {
		return dnderr.Wrapf(err, "failed to store spell '%s'", def.Key)
	}

	s.logger.Debug("stored spell definition",
		zap.String("key", def.Key),
		zap.String("element", def.Element.String()),
		zap.Int("mana_cost", def.ManaCost))
	return nil
}

func (s *service) Remove(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return dnderr.InvalidArgument("spell key is required")
	}
	return s.repository.Delete(ctx, key)
}

func (s *service) SeedDefaults(ctx context.Context) (int, error) {
	n, err := catalog.Seed(ctx, s.repository, catalog.DefaultDefinitions())
	if err != nil {
		return n, dnderr.Wrap(err, "failed to seed default spells")
	}

	s.logger.Info("seeded default spells", zap.Int("count", n))
	return n, nil
}

func (s *service) LoadYAML(ctx context.Context, r io.Reader, source string) (int, error) {
	if r == nil {
		return 0, dnderr.InvalidArgument("reader cannot be nil")
	}

	defs, err := catalog.LoadYAML(r, source)
	if err != nil {
		return 0, dnderr.WrapWithCode(err, dnderr.CodeValidation, "failed to load spell file")
	}

	n, err := catalog.Seed(ctx, s.repository, defs)
	if err != nil {
		return n, dnderr.Wrap(err, "failed to store spell file")
	}

	s.logger.Info("loaded spell file",
		zap.String("source", source),
		zap.Int("count", n))
	return n, nil
}
