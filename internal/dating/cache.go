// internal/dating/cache.go

package dating

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/imadgeboyega/kiekky-matching/internal/matching"
)

// ScoreCache memoizes CompatibilityScores. A miss returns nil, nil.
type ScoreCache interface {
	Get(ctx context.Context, key string) (*matching.CompatibilityScore, error)
	Set(ctx context.Context, key string, score matching.CompatibilityScore) error
}

// TasteStore holds the latest taste profile per user. A miss returns nil, nil.
type TasteStore interface {
	Get(ctx context.Context, userID int64) (*matching.UserTasteProfile, error)
	Save(ctx context.Context, taste matching.UserTasteProfile) error
	Delete(ctx context.Context, userID int64) error
}

// scoreKey identifies a score by the pair and every input version it depends
// on, so updating either profile or the taste profile changes the key.
// Stamps are in microseconds, the precision Postgres keeps.
func scoreKey(user, candidate matching.Profile, taste *matching.UserTasteProfile) string {
	var tasteStamp int64
	if taste != nil {
		tasteStamp = taste.UpdatedAt.UnixMicro()
	}
	return fmt.Sprintf("compat:%d:%d:%d:%d:%d",
		user.ID, candidate.ID,
		user.UpdatedAt.UnixMicro(), candidate.UpdatedAt.UnixMicro(), tasteStamp,
	)
}

func tasteKey(userID int64) string {
	return fmt.Sprintf("taste:%d", userID)
}

// RedisScoreCache stores scores as JSON with a TTL
type RedisScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisScoreCache(client *redis.Client, ttl time.Duration) *RedisScoreCache {
	return &RedisScoreCache{client: client, ttl: ttl}
}

func (c *RedisScoreCache) Get(ctx context.Context, key string) (*matching.CompatibilityScore, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var score matching.CompatibilityScore
	if err := json.Unmarshal(data, &score); err != nil {
		return nil, fmt.Errorf("decode cached score: %w", err)
	}
	return &score, nil
}

func (c *RedisScoreCache) Set(ctx context.Context, key string, score matching.CompatibilityScore) error {
	data, err := json.Marshal(score)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// RedisTasteStore stores taste profiles under taste:{userID}
type RedisTasteStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTasteStore(client *redis.Client, ttl time.Duration) *RedisTasteStore {
	return &RedisTasteStore{client: client, ttl: ttl}
}

func (s *RedisTasteStore) Get(ctx context.Context, userID int64) (*matching.UserTasteProfile, error) {
	data, err := s.client.Get(ctx, tasteKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var taste matching.UserTasteProfile
	if err := json.Unmarshal(data, &taste); err != nil {
		return nil, fmt.Errorf("decode taste profile: %w", err)
	}
	return &taste, nil
}

func (s *RedisTasteStore) Save(ctx context.Context, taste matching.UserTasteProfile) error {
	data, err := json.Marshal(taste)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, tasteKey(taste.UserID), data, s.ttl).Err()
}

func (s *RedisTasteStore) Delete(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, tasteKey(userID)).Err()
}

// MemoryTasteStore keeps taste profiles in process. Used when Redis is not
// configured.
type MemoryTasteStore struct {
	mu     sync.RWMutex
	tastes map[int64]matching.UserTasteProfile
}

func NewMemoryTasteStore() *MemoryTasteStore {
	return &MemoryTasteStore{tastes: make(map[int64]matching.UserTasteProfile)}
}

func (s *MemoryTasteStore) Get(_ context.Context, userID int64) (*matching.UserTasteProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	taste, ok := s.tastes[userID]
	if !ok {
		return nil, nil
	}
	return &taste, nil
}

func (s *MemoryTasteStore) Save(_ context.Context, taste matching.UserTasteProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tastes[taste.UserID] = taste
	return nil
}

func (s *MemoryTasteStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tastes, userID)
	return nil
}

// noopScoreCache disables score memoization
type noopScoreCache struct{}

func (noopScoreCache) Get(context.Context, string) (*matching.CompatibilityScore, error) {
	return nil, nil
}

func (noopScoreCache) Set(context.Context, string, matching.CompatibilityScore) error {
	return nil
}
