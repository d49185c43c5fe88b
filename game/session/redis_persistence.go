package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wricardo/mcp-training/labyrinth/game/service"
)

const (
	// DefaultRedisKeyPrefix namespaces session keys
	DefaultRedisKeyPrefix = "labyrinth:session:"

	redisOpTimeout = 5 * time.Second
	redisScanCount = 100
)

// RedisPersistence implements SessionPersistence with one JSON value per
// session key
type RedisPersistence struct {
	client *redis.Client
	levels service.LevelManager
	prefix string
	ttl    time.Duration
}

// NewRedisPersistence creates a Redis-backed persistence layer. A zero ttl
// keeps sessions until they are deleted.
func NewRedisPersistence(client *redis.Client, levels service.LevelManager, ttl time.Duration) (*RedisPersistence, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisPersistence{
		client: client,
		levels: levels,
		prefix: DefaultRedisKeyPrefix,
		ttl:    ttl,
	}, nil
}

// Save stores the session under its key
func (rp *RedisPersistence) Save(session *service.Session) error {
	data, err := encodeSession(session, false)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := rp.client.Set(ctx, rp.key(session.ID), data, rp.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session %s: %w", session.ID, err)
	}
	return nil
}

// Load reads a session by ID
func (rp *RedisPersistence) Load(id string) (*service.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	data, err := rp.client.Get(ctx, rp.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session %s: %w", id, err)
	}

	return decodeSession(data, rp.levels)
}

// Delete removes a session key
func (rp *RedisPersistence) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	removed, err := rp.client.Del(ctx, rp.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	if removed == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListAll scans for every session key
func (rp *RedisPersistence) ListAll() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	var ids []string
	iter := rp.client.Scan(ctx, 0, rp.prefix+"*", redisScanCount).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, rp.idFromKey(iter.Val()))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan sessions: %w", err)
	}
	return ids, nil
}

// Exists checks if a session key exists
func (rp *RedisPersistence) Exists(id string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	n, err := rp.client.Exists(ctx, rp.key(id)).Result()
	return err == nil && n > 0
}

func (rp *RedisPersistence) key(id string) string {
	return rp.prefix + strings.ToLower(id)
}

func (rp *RedisPersistence) idFromKey(key string) string {
	return strings.TrimPrefix(key, rp.prefix)
}
