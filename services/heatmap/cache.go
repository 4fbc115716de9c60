// File: services/heatmap/cache.go
package heatmap

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	snapshotPrefix   = "heatmap:"
	generationPrefix = "heatmap-gen:"
	// generationTTL bounds how long an untouched event keeps its counter.
	generationTTL = 24 * time.Hour
)

// Cache stores computed snapshots. Get returns nil, nil on a miss.
//
// Every Invalidate bumps the event's generation. Set is given the generation
// read before the snapshot was computed and drops the write if it changed, so
// a snapshot built from records older than the last write is never stored.
type Cache interface {
	Get(ctx context.Context, eventID string) (*Snapshot, error)
	Generation(ctx context.Context, eventID string) (int64, error)
	Set(ctx context.Context, snap *Snapshot, generation int64) error
	Invalidate(ctx context.Context, eventID string) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (s *RedisCache) Get(ctx context.Context, eventID string) (*Snapshot, error) {
	data, err := s.client.Get(ctx, snapshotPrefix+eventID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *RedisCache) Generation(ctx context.Context, eventID string) (int64, error) {
	gen, err := s.client.Get(ctx, generationPrefix+eventID).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

// Set stores the snapshot under WATCH on the generation key. A concurrent
// Invalidate aborts the transaction and the snapshot is discarded.
func (s *RedisCache) Set(ctx context.Context, snap *Snapshot, generation int64) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	genKey := generationPrefix + snap.EventID

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, snapshotPrefix+snap.EventID, b, s.ttl)
			return nil
		})
		return err
	}, genKey)
	if err == redis.TxFailedErr {
		return nil
	}
	return err
}

func (s *RedisCache) Invalidate(ctx context.Context, eventID string) error {
	genKey := generationPrefix + eventID
	keep := generationTTL
	if s.ttl > keep {
		keep = s.ttl
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, keep)
		pipe.Del(ctx, snapshotPrefix+eventID)
		return nil
	})
	return err
}

// NopCache disables snapshot caching.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (*Snapshot, error)   { return nil, nil }
func (NopCache) Generation(context.Context, string) (int64, error) { return 0, nil }
func (NopCache) Set(context.Context, *Snapshot, int64) error       { return nil }
func (NopCache) Invalidate(context.Context, string) error          { return nil }
