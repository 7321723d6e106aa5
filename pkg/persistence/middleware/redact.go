package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/gestures/pkg/domain"
	"github.com/aretw0/gestures/pkg/ports"
)

// Redacted replaces the value of entries recorded on a sensitive surface.
const Redacted = "***"

type redactMiddleware struct {
	next     ports.Journal
	patterns []*regexp.Regexp
}

// NewRedactMiddleware creates a middleware that masks the value of entries
// whose surface matches any of the patterns. The entry itself is kept, so
// counts per surface stay accurate.
func NewRedactMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid surface pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.Journal) ports.Journal {
		return &redactMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactMiddleware) Append(ctx context.Context, entry domain.JournalEntry) error {
	for _, p := range m.patterns {
		if p.MatchString(entry.Surface) {
			entry.Value = Redacted
			break
		}
	}
	return m.next.Append(ctx, entry)
}

func (m *redactMiddleware) List(ctx context.Context, surface string, limit int) ([]domain.JournalEntry, error) {
	return m.next.List(ctx, surface, limit)
}

func (m *redactMiddleware) Clear(ctx context.Context, surface string) error {
	return m.next.Clear(ctx, surface)
}

func (m *redactMiddleware) Surfaces(ctx context.Context) ([]string, error) {
	return m.next.Surfaces(ctx)
}
