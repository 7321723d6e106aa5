package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/gestures/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunJournalContract runs a suite of tests to verify that a Journal implementation
// adheres to the defined interface contract.
func RunJournalContract(t *testing.T, journal Journal) {
	ctx := context.Background()
	surface := "contract-surface-" + time.Now().Format("20060102150405.000000")
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	entry := func(i int, kind domain.EntryKind, value string) domain.JournalEntry {
		return domain.JournalEntry{
			Surface: surface,
			Kind:    kind,
			Value:   value,
			At:      base.Add(time.Duration(i) * time.Second),
		}
	}

	t.Run("Append and List newest first", func(t *testing.T) {
		require.NoError(t, journal.Append(ctx, entry(0, domain.EntryGesture, "RD")))
		require.NoError(t, journal.Append(ctx, entry(1, domain.EntryExtra, domain.ExtraWheelUp)))
		require.NoError(t, journal.Append(ctx, entry(2, domain.EntryGesture, "L")))

		entries, err := journal.List(ctx, surface, 0)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "L", entries[0].Value)
		assert.Equal(t, domain.ExtraWheelUp, entries[1].Value)
		assert.Equal(t, domain.EntryExtra, entries[1].Kind)
		assert.Equal(t, "RD", entries[2].Value)
		assert.True(t, entries[2].At.Equal(base), "timestamps survive the round trip")
	})

	t.Run("List honours limit", func(t *testing.T) {
		entries, err := journal.List(ctx, surface, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "L", entries[0].Value)
	})

	t.Run("Surfaces", func(t *testing.T) {
		surfaces, err := journal.Surfaces(ctx)
		require.NoError(t, err)
		assert.Contains(t, surfaces, surface)
	})

	t.Run("List unknown surface", func(t *testing.T) {
		entries, err := journal.List(ctx, fmt.Sprintf("%s-missing", surface), 0)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, journal.Clear(ctx, surface))

		entries, err := journal.List(ctx, surface, 0)
		require.NoError(t, err)
		assert.Empty(t, entries)

		surfaces, err := journal.Surfaces(ctx)
		require.NoError(t, err)
		assert.NotContains(t, surfaces, surface)
	})
}
