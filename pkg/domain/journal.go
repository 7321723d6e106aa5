package domain

import "time"

// EntryKind distinguishes journal entries.
type EntryKind string

const (
	EntryGesture EntryKind = "gesture"
	EntryExtra   EntryKind = "extra"
)

// JournalEntry records one recognized gesture of a surface.
type JournalEntry struct {
	Surface string    `json:"surface"`
	Kind    EntryKind `json:"kind"`
	// Value is the direction chain for gestures and the reason for extra gestures.
	Value string    `json:"value"`
	At    time.Time `json:"at"`
}
