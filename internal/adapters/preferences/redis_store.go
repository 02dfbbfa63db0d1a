package preferences

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"reunion-route-service/internal/domain"
)

// RedisStore is a Redis-backed PreferenceStore. Signals for one owner and
// category live in a single hash keyed "prefs:{owner}:{category}", so group
// and individual stores can share one Redis instance.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(owner string, category domain.PreferenceCategory) string {
	return fmt.Sprintf("prefs:%s:%s", owner, category)
}

func (r *RedisStore) Get(
	ctx context.Context,
	owner string,
	category domain.PreferenceCategory,
	key string,
) (float64, bool, error) {
	val, err := r.client.HGet(ctx, redisKey(owner, category), key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get preference %s/%s/%s: %w", owner, category, key, err)
	}

	rating, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, fmt.Errorf("get preference %s/%s/%s: parse %q: %w", owner, category, key, val, err)
	}

	return rating, true, nil
}

func (r *RedisStore) Increment(
	ctx context.Context,
	owner string,
	category domain.PreferenceCategory,
	key string,
	delta float64,
) (float64, error) {
	updated, err := r.client.HIncrByFloat(ctx, redisKey(owner, category), key, delta).Result()
	if err != nil {
		return 0, fmt.Errorf("increment preference %s/%s/%s: %w", owner, category, key, err)
	}
	return updated, nil
}
