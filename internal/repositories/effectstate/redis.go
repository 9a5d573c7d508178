package effectstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider
}

// NewRedisRepository creates a Redis-backed effect state repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Client == nil {
		panic("redis client is required")
	}

	tp := cfg.TimeProvider
	if tp == nil {
		tp = RealTimeProvider{}
	}

	return &redisRepo{
		client:       cfg.Client,
		timeProvider: tp,
	}
}

// NewRedis creates a Redis repository stamping records with the wall clock
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func recordKey(entityID string) string {
	return fmt.Sprintf("effectstate:%s", entityID)
}

func areaKey(areaID string) string {
	return fmt.Sprintf("area:%s:effectstates", areaID)
}

func (r *redisRepo) Save(ctx context.Context, rec *Record) error {
	if rec == nil {
		return rpgerr.InvalidArgument("record cannot be nil")
	}
	if rec.EntityID == "" {
		return rpgerr.InvalidArgument("entity ID is required")
	}

	previous, err := r.Get(ctx, rec.EntityID)
	if err != nil && !rpgerr.IsNotFound(err) {
		return err
	}

	rec.UpdatedAt = r.timeProvider.Now()

	jsonData, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal effect state: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, recordKey(rec.EntityID), string(jsonData), 0)
	if previous != nil && previous.AreaID != "" && previous.AreaID != rec.AreaID {
		pipe.SRem(ctx, areaKey(previous.AreaID), rec.EntityID)
	}
	if rec.AreaID != "" {
		pipe.SAdd(ctx, areaKey(rec.AreaID), rec.EntityID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save effect state in Redis: %w", err)
	}

	return nil
}

func (r *redisRepo) Get(ctx context.Context, entityID string) (*Record, error) {
	if entityID == "" {
		return nil, rpgerr.InvalidArgument("entity ID is required")
	}

	jsonData, err := r.client.Get(ctx, recordKey(entityID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, rpgerr.NotFoundf("effect state for %s not found", entityID)
		}
		return nil, fmt.Errorf("failed to get effect state from Redis: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(jsonData, &rec); err != nil {
		return nil, rpgerr.WrapWithCode(err, rpgerr.CodeValidation, "failed to unmarshal effect state")
	}

	return &rec, nil
}

func (r *redisRepo) Delete(ctx context.Context, entityID string) error {
	rec, err := r.Get(ctx, entityID)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, recordKey(entityID))
	if rec.AreaID != "" {
		pipe.SRem(ctx, areaKey(rec.AreaID), entityID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete effect state from Redis: %w", err)
	}

	return nil
}

func (r *redisRepo) ListByArea(ctx context.Context, areaID string) ([]*Record, error) {
	if areaID == "" {
		return nil, rpgerr.InvalidArgument("area ID is required")
	}

	entityIDs, err := r.client.SMembers(ctx, areaKey(areaID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get area effect states from Redis: %w", err)
	}

	records := make([]*Record, len(entityIDs))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range entityIDs {
		g.Go(func() error {
			rec, err := r.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get effect state %s: %w", id, err)
			}
			records[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}
