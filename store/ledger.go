package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Ledger remembers which payment sessions already have a stored order.
// It is only marked after the order write succeeds, so a mark never
// exists without an order behind it.
type Ledger interface {
	Processed(ctx context.Context, sessionID string) (bool, error)
	MarkProcessed(ctx context.Context, sessionID string) error
}

// RedisLedger keeps the marks in Redis so every instance shares one view
type RedisLedger struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLedger(client *redis.Client, ttl time.Duration) *RedisLedger {
	return &RedisLedger{client: client, ttl: ttl}
}

func (l *RedisLedger) Processed(ctx context.Context, sessionID string) (bool, error) {
	err := l.client.Get(ctx, ledgerKey(sessionID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}
	return true, nil
}

func (l *RedisLedger) MarkProcessed(ctx context.Context, sessionID string) error {
	if err := l.client.Set(ctx, ledgerKey(sessionID), time.Now().UTC().Format(time.RFC3339), l.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func ledgerKey(sessionID string) string {
	return fmt.Sprintf("webhook:session:%s", sessionID)
}

// MemoryLedger is a process-local ledger for development and tests
type MemoryLedger struct {
	mu        sync.Mutex
	processed map[string]struct{}
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{processed: make(map[string]struct{})}
}

func (l *MemoryLedger) Processed(_ context.Context, sessionID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.processed[sessionID]
	return ok, nil
}

func (l *MemoryLedger) MarkProcessed(_ context.Context, sessionID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.processed[sessionID] = struct{}{}
	return nil
}
