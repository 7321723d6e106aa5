package ports

import (
	"context"

	"github.com/aretw0/gestures/pkg/domain"
)

// Journal records recognized gestures per surface.
// It lives outside the recognition core; the engine never blocks on it.
type Journal interface {
	// Append records one entry.
	Append(ctx context.Context, entry domain.JournalEntry) error

	// List returns up to limit entries of a surface, newest first.
	// A non-positive limit returns every entry.
	List(ctx context.Context, surface string, limit int) ([]domain.JournalEntry, error)

	// Clear removes every entry of a surface.
	Clear(ctx context.Context, surface string) error

	// Surfaces returns the surfaces that have at least one entry.
	Surfaces(ctx context.Context) ([]string, error)
}
