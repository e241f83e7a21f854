package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/fitgear/fitgear-api/cart"
	"github.com/fitgear/fitgear-api/models"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// CartSnapshot is the stored form of a checkout session's cart.
type CartSnapshot struct {
	Owner   models.Principal `json:"owner"`
	Lines   []cart.Line      `json:"lines"`
	SavedAt time.Time        `json:"savedAt"`
}

// RedisCartStore keeps cart snapshots under cart:<session id>.
type RedisCartStore struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisCartStore(client *redis.Client, baseTTL time.Duration) *RedisCartStore {
	if baseTTL <= 0 {
		baseTTL = 24 * time.Hour
	}
	return &RedisCartStore{client: client, baseTTL: baseTTL}
}

func (r *RedisCartStore) Load(ctx context.Context, sessionID string) (*CartSnapshot, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var snap CartSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return &snap, nil
}

// Save writes the snapshot with a jittered TTL so carts created together do
// not all expire together.
func (r *RedisCartStore) Save(ctx context.Context, sessionID string, snap CartSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(sessionID), data, r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Refresh pushes back the expiry of a stored cart. A missing cart is not an
// error.
func (r *RedisCartStore) Refresh(ctx context.Context, sessionID string) error {
	if err := r.client.Expire(ctx, cartKey(sessionID), r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis expire failed: %w", err)
	}
	return nil
}

func (r *RedisCartStore) ttl() time.Duration {
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	return r.baseTTL + jitter
}

func (r *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
