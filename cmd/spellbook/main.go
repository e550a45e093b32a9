package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KirkDiggler/spellbook/internal/clients/dnd5e"
	"github.com/KirkDiggler/spellbook/internal/config"
	"github.com/KirkDiggler/spellbook/internal/repositories/catalog"
	"github.com/KirkDiggler/spellbook/internal/services"
)

var (
	// Global flags
	verbose bool

	cfg         *config.Config
	logger      *zap.Logger
	provider    *services.Provider
	redisClient *redis.Client
)

var rootCmd = &cobra.Command{
	Use:   "spellbook",
	Short: "Manage spellbooks, mana and the spell catalog",
	Long: `spellbook keeps a small fixed-size book of spells and a mana pool.

Books come in two kinds: a basic spellbook (5 slots, 50/100 mana) and a
master spellbook (up to 5 slots, 100/150 mana) that refuses one element.
Spells can be learned directly or by key from the spell catalog, which
lives in Redis when REDIS_URL is set and in memory otherwise.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load .env: %w", err)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		logger, err = newLogger(cfg.Log.Level, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		provider, err = buildProvider(cmd.Context(), cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(demoCmd, runCmd, catalogCmd)
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	// PersistentPostRun is skipped when a command fails, so clean up here
	cleanup()
	if err != nil {
		os.Exit(1)
	}
}

// cleanup closes the Redis connection and flushes the logger
func cleanup() {
	if redisClient != nil {
		if err := redisClient.Close(); err != nil && logger != nil {
			logger.Warn("error closing Redis connection", zap.Error(err))
		}
		redisClient = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zapConfig.Level = zap.NewAtomicLevelAt(lvl)

	return zapConfig.Build()
}

// buildProvider wires services against Redis when it is reachable and in-memory storage otherwise
func buildProvider(ctx context.Context, out io.Writer) (*services.Provider, error) {
	srdClient, err := dnd5e.New(&dnd5e.Config{
		HttpClient: &http.Client{
			Timeout: cfg.DND5E.Timeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create D&D 5e client: %w", err)
	}

	providerConfig := &services.ProviderConfig{
		SRDClient: srdClient,
		Output:    out,
		Logger:    logger,
	}

	if repo := connectCatalog(ctx); repo != nil {
		providerConfig.CatalogRepository = repo
		return services.NewProvider(providerConfig), nil
	}

	// The in-memory catalog starts empty on every run, so give it the built-in spells
	p := services.NewProvider(providerConfig)
	if _, err := p.CatalogService.SeedDefaults(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func connectCatalog(ctx context.Context) catalog.Repository {
	if cfg.Redis.URL == "" {
		logger.Debug("no REDIS_URL found, using in-memory catalog")
		return nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Warn("failed to parse Redis URL, falling back to in-memory catalog", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("failed to connect to Redis, falling back to in-memory catalog", zap.Error(err))
		_ = client.Close()
		return nil
	}

	logger.Debug("using Redis spell catalog", zap.String("addr", opts.Addr))
	redisClient = client
	return catalog.NewRedis(client)
}
