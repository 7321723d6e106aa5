package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/gestures/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Journal implements ports.Journal using Redis.
// Each surface is a list, newest entry at the head; a sorted set indexes the
// surfaces by last activity.
type Journal struct {
	client     *backend.Client
	prefix     string
	ttl        time.Duration
	maxEntries int
}

type Option func(*Journal)

// WithTTL expires a surface's journal after ttl without new entries.
func WithTTL(ttl time.Duration) Option {
	return func(j *Journal) {
		j.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(j *Journal) {
		j.prefix = prefix
	}
}

// WithMaxEntries keeps only the newest n entries per surface. Zero keeps all.
func WithMaxEntries(n int) Option {
	return func(j *Journal) {
		j.maxEntries = n
	}
}

// New creates a new Redis journal with options.
func New(address, password string, db int, opts ...Option) *Journal {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis journal from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Journal {
	j := &Journal{
		client: client,
		prefix: "gestures:journal:",
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *Journal) key(surface string) string {
	return j.prefix + "surface:" + surface
}

func (j *Journal) indexKey() string {
	return j.prefix + "index"
}

// Append records an entry.
func (j *Journal) Append(ctx context.Context, entry domain.JournalEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}

	pipe := j.client.Pipeline()
	pipe.LPush(ctx, j.key(entry.Surface), data)
	if j.maxEntries > 0 {
		pipe.LTrim(ctx, j.key(entry.Surface), 0, int64(j.maxEntries-1))
	}
	if j.ttl > 0 {
		pipe.Expire(ctx, j.key(entry.Surface), j.ttl)
	}

	// Score = expiry time, so List can prune surfaces whose list expired.
	score := float64(time.Now().Add(j.ttl).Unix())
	if j.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, j.indexKey(), backend.Z{
		Score:  score,
		Member: entry.Surface,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (j *Journal) List(ctx context.Context, surface string, limit int) ([]domain.JournalEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	vals, err := j.client.LRange(ctx, j.key(surface), 0, stop).Result()
	if err != nil {
		if err == backend.Nil {
			return []domain.JournalEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	entries := make([]domain.JournalEntry, 0, len(vals))
	for _, val := range vals {
		var entry domain.JournalEntry
		if err := json.Unmarshal([]byte(val), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal journal entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Clear removes the journal of a surface.
func (j *Journal) Clear(ctx context.Context, surface string) error {
	pipe := j.client.Pipeline()
	pipe.Del(ctx, j.key(surface))
	pipe.ZRem(ctx, j.indexKey(), surface)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}
	return nil
}

// Surfaces returns the surfaces with entries.
// Expired surfaces are pruned from the index lazily.
func (j *Journal) Surfaces(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := j.client.ZRemRangeByScore(ctx, j.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired journals: %w", err)
	}

	surfaces, err := j.client.ZRange(ctx, j.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	return surfaces, nil
}

// Close closes the redis client.
func (j *Journal) Close() error {
	return j.client.Close()
}
