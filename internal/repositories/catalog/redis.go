package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/spellbook/internal/domain/spell"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

const indexKey = "spells"

// Data represents the serialized form of a definition in Redis
type Data struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Element     string `json:"element"`
	ManaCost    int    `json:"mana_cost"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
}

const defaultListConcurrency = 8

type redisRepo struct {
	client          redis.UniversalClient
	listConcurrency int
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient

	// ListConcurrency bounds parallel GETs during List (default: 8)
	ListConcurrency int
}

// NewRedis creates a new Redis-backed catalog repository
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

// NewRedisRepository creates a Redis-backed catalog repository from config
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	concurrency := cfg.ListConcurrency
	if concurrency <= 0 {
		concurrency = defaultListConcurrency
	}

	return &redisRepo{
		client:          cfg.Client,
		listConcurrency: concurrency,
	}
}

func (r *redisRepo) key(key string) string {
	return fmt.Sprintf("spell:%s", key)
}

// Put writes the definition and adds its key to the index
func (r *redisRepo) Put(ctx context.Context, def *Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	jsonData, err := json.Marshal(toData(def))
	if err != nil {
		return fmt.Errorf("failed to marshal spell definition: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(def.Key), string(jsonData), 0)
	pipe.SAdd(ctx, indexKey, def.Key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store spell %s in Redis: %w", def.Key, err)
	}

	return nil
}

// Get retrieves a definition by key
func (r *redisRepo) Get(ctx context.Context, key string) (*Definition, error) {
	if key == "" {
		return nil, dnderr.InvalidArgument("spell key is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dnderr.NotFoundf("spell '%s' not found in catalog", key).
				WithMeta("key", key)
		}
		return nil, fmt.Errorf("failed to get spell %s from Redis: %w", key, err)
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal spell %s: %w", key, err)
	}

	return fromData(&data), nil
}

// List reads the index and fetches every member concurrently.
// Index entries whose definition has vanished are skipped.
func (r *redisRepo) List(ctx context.Context) ([]*Definition, error) {
	keys, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get spell index from Redis: %w", err)
	}

	found := make([]*Definition, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.listConcurrency)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			def, getErr := r.Get(gctx, key)
			if getErr != nil {
				if dnderr.IsNotFound(getErr) {
					return nil
				}
				return getErr
			}
			found[i] = def
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*Definition, 0, len(found))
	for _, def := range found {
		if def != nil {
			result = append(result, def)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result, nil
}

// Delete removes the definition and its index entry
func (r *redisRepo) Delete(ctx context.Context, key string) error {
	if key == "" {
		return dnderr.InvalidArgument("spell key is required")
	}

	pipe := r.client.Pipeline()
	del := pipe.Del(ctx, r.key(key))
	pipe.SRem(ctx, indexKey, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete spell %s from Redis: %w", key, err)
	}

	if del.Val() == 0 {
		return dnderr.NotFoundf("spell '%s' not found in catalog", key).
			WithMeta("key", key)
	}
	return nil
}

func toData(def *Definition) *Data {
	return &Data{
		Key:         def.Key,
		Name:        def.Name,
		Element:     def.Element.String(),
		ManaCost:    def.ManaCost,
		Description: def.Description,
		Source:      def.Source,
	}
}

func fromData(data *Data) *Definition {
	return &Definition{
		Key:         data.Key,
		Name:        data.Name,
		Element:     spell.Element(data.Element),
		ManaCost:    data.ManaCost,
		Description: data.Description,
		Source:      data.Source,
	}
}
