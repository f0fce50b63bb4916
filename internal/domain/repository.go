package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// MoodRepository defines the interface for mood history persistence
// This follows the Dependency Inversion Principle - domain defines the interface
type MoodRepository interface {
	// SaveMood persists a new mood entry
	SaveMood(ctx context.Context, entry MoodEntry) error

	// ListMoods returns the full mood history, oldest first
	ListMoods(ctx context.Context) ([]MoodEntry, error)

	// GetMoodByDate returns the entry recorded on date (YYYY-MM-DD)
	GetMoodByDate(ctx context.Context, date string) (MoodEntry, error)

	// Health checks store connectivity
	Health(ctx context.Context) error
}
