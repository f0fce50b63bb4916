package postgres

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/moodcast/backend/internal/domain"
)

// MemoryRepository implements domain.MoodRepository in process memory.
// It is used when no database is configured.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []domain.MoodEntry
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// NewSeededMemoryRepository creates an in-memory repository holding a week
// of sample history ending the day before now
func NewSeededMemoryRepository(now time.Time) *MemoryRepository {
	day := func(n int) string { return now.AddDate(0, 0, -n).Format(domain.DateLayout) }
	w := func(temp float64, code int) *domain.WeatherEntry {
		return &domain.WeatherEntry{Temperature: temp, WeatherCode: code}
	}

	return &MemoryRepository{entries: []domain.MoodEntry{
		{ID: "6", Mood: "sad", Date: day(6), MoodScore: 5, Weather: w(9, 71)},
		{ID: "5", Mood: "happy", Date: day(5), MoodScore: 7, Weather: w(14, 0)},
		{ID: "4", Mood: "sad", Date: day(4), MoodScore: 4, Weather: w(10, 61)},
		{ID: "1", Mood: "sad", Date: day(3), MoodScore: 3, Weather: w(12, 63)},
		{ID: "2", Mood: "sad", Date: day(2), MoodScore: 8, Weather: w(10, 3)},
		{ID: "3", Mood: "sad", Date: day(1), MoodScore: 6, Weather: w(11, 3)},
	}}
}

// SaveMood appends an entry
func (r *MemoryRepository) SaveMood(ctx context.Context, entry domain.MoodEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

// ListMoods returns a copy of the history ordered by date
func (r *MemoryRepository) ListMoods(ctx context.Context) ([]domain.MoodEntry, error) {
	r.mu.RLock()
	out := make([]domain.MoodEntry, len(r.entries))
	copy(out, r.entries)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// GetMoodByDate returns the most recently saved entry for date
func (r *MemoryRepository) GetMoodByDate(ctx context.Context, date string) (domain.MoodEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].Date == date {
			return r.entries[i], nil
		}
	}
	return domain.MoodEntry{}, domain.ErrNotFound
}

// Health always returns nil in memory mode
func (r *MemoryRepository) Health(ctx context.Context) error {
	return nil
}
