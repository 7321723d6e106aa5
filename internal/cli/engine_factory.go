package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/gestures"
	"github.com/aretw0/gestures/pkg/adapters/memory"
	"github.com/aretw0/gestures/pkg/adapters/redis"
	"github.com/aretw0/gestures/pkg/domain"
	"github.com/aretw0/gestures/pkg/persistence/middleware"
	"github.com/aretw0/gestures/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// defaultJournalEntries bounds the in-memory journal per surface.
const defaultJournalEntries = 1000

// createEngine initializes an engine with standard CLI conventions. Debug
// adds hooks that log every lifecycle event after the given ones.
func createEngine(cfg domain.Config, logger *slog.Logger, debug bool, hooks domain.LifecycleHooks, extra ...gestures.Option) (*gestures.Engine, error) {
	if debug {
		hooks = domain.CombineHooks(hooks, createDebugHooks(logger))
	}
	engineOpts := []gestures.Option{
		gestures.WithConfig(cfg),
		gestures.WithLogger(logger),
		gestures.WithLifecycleHooks(hooks),
	}
	engineOpts = append(engineOpts, extra...)

	engine, err := gestures.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// createJournal picks the journal backend: Redis when redisURL is set,
// memory otherwise. The returned close function releases the backend.
func createJournal(ctx context.Context, redisURL string, ttl time.Duration) (ports.Journal, func() error, error) {
	if redisURL == "" {
		return memory.NewJournal(memory.WithMaxEntries(defaultJournalEntries)), func() error { return nil }, nil
	}

	opts, err := redisOptions(redisURL)
	if err != nil {
		return nil, nil, err
	}
	client := backend.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	var journalOpts []redis.Option
	if ttl > 0 {
		journalOpts = append(journalOpts, redis.WithTTL(ttl))
	}
	j := redis.NewFromClient(client, journalOpts...)
	return j, j.Close, nil
}

// redisOptions accepts either a redis:// URL or a bare host:port.
func redisOptions(raw string) (*backend.Options, error) {
	if strings.Contains(raw, "://") {
		opts, err := backend.ParseURL(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opts, nil
	}
	return &backend.Options{Addr: raw}, nil
}

// secureJournal wraps j with redaction and encryption when configured.
// Redaction runs first so that masked values are sealed as well.
func secureJournal(j ports.Journal, keys []string, redact []string) (ports.Journal, error) {
	var mws []middleware.Middleware
	if len(redact) > 0 {
		mw, err := middleware.NewRedactMiddleware(redact)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	if len(keys) > 0 {
		decoded := make([][]byte, len(keys))
		for i, k := range keys {
			raw, err := base64.StdEncoding.DecodeString(k)
			if err != nil {
				return nil, fmt.Errorf("invalid journal key %d: %w", i, err)
			}
			decoded[i] = raw
		}
		mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    decoded[0],
			FallbackKeys: decoded[1:],
		})
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	return middleware.Chain(j, mws...), nil
}
