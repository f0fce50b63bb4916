package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodcast/backend/internal/domain"
	"github.com/moodcast/backend/internal/repository/postgres"
)

type stubCurrentWeather struct {
	weather domain.CurrentWeather
	err     error
	city    string
}

func (s *stubCurrentWeather) CurrentWeather(ctx context.Context, city domain.City) (domain.CurrentWeather, error) {
	s.city = city.Name
	return s.weather, s.err
}

type failingRepo struct {
	postgres.MemoryRepository
}

func (f *failingRepo) SaveMood(ctx context.Context, entry domain.MoodEntry) error {
	return errors.New("disk full")
}

func newTestMoodService(repo MoodRepository, weather CurrentWeatherSource) *MoodService {
	svc := NewMoodService(repo, weather, discardLogger())
	svc.now = func() time.Time { return testNow }
	svc.newID = func() string { return "mood-1" }
	return svc
}

func TestAddMood_AttachesCurrentWeather(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewMemoryRepository()
	weather := &stubCurrentWeather{weather: domain.CurrentWeather{Temperature: 3, WeatherCode: 71, Time: "2026-10-14T12:00"}}
	svc := newTestMoodService(repo, weather)

	entry, err := svc.AddMood(ctx, testCity, NewMoodRequest{MoodScore: 4, Mood: "cozy", Notes: "  snow  "})
	require.NoError(t, err)

	assert.Equal(t, "mood-1", entry.ID)
	assert.Equal(t, "2026-10-14", entry.Date)
	assert.Equal(t, "snow", entry.Notes)
	require.NotNil(t, entry.Weather)
	assert.Equal(t, domain.WeatherEntry{Temperature: 3, WeatherCode: 71, Time: "2026-10-14T12:00"}, *entry.Weather)
	assert.Equal(t, "Moscow", weather.city)

	stored, err := svc.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.MoodEntry{entry}, stored)

	today, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, entry, today)
}

func TestAddMood_KeepsClientWeather(t *testing.T) {
	weather := &stubCurrentWeather{err: errors.New("must not be called")}
	svc := newTestMoodService(postgres.NewMemoryRepository(), weather)

	w := &domain.WeatherEntry{Temperature: 20, WeatherCode: 0, Time: "2026-10-10T09:00"}
	entry, err := svc.AddMood(context.Background(), testCity, NewMoodRequest{Date: "2026-10-10", MoodScore: 9, Weather: w})
	require.NoError(t, err)

	assert.Equal(t, "2026-10-10", entry.Date)
	assert.Equal(t, w, entry.Weather)
	assert.Empty(t, weather.city)
}

func TestAddMood_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   NewMoodRequest
		field string
	}{
		{"missing score", NewMoodRequest{}, "moodScore"},
		{"score too high", NewMoodRequest{MoodScore: 11}, "moodScore"},
		{"bad date", NewMoodRequest{MoodScore: 5, Date: "14.10.2026"}, "date"},
		{"unknown label", NewMoodRequest{MoodScore: 5, Mood: "ecstatic"}, "mood"},
	}

	svc := newTestMoodService(postgres.NewMemoryRepository(), &stubCurrentWeather{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddMood(context.Background(), testCity, tt.req)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestAddMood_Errors(t *testing.T) {
	ctx := context.Background()

	svc := newTestMoodService(postgres.NewMemoryRepository(), &stubCurrentWeather{err: context.Canceled})
	_, err := svc.AddMood(ctx, testCity, NewMoodRequest{MoodScore: 5})
	assert.ErrorIs(t, err, context.Canceled)

	svc = newTestMoodService(&failingRepo{}, &stubCurrentWeather{})
	_, err = svc.AddMood(ctx, testCity, NewMoodRequest{MoodScore: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestToday_NotFound(t *testing.T) {
	svc := newTestMoodService(postgres.NewMemoryRepository(), &stubCurrentWeather{})

	_, err := svc.Today(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
