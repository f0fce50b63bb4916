package service

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/moodcast/backend/internal/domain"
)

// NewMoodRequest is the body of a mood submission
type NewMoodRequest struct {
	Date      string               `json:"date" validate:"omitempty,datetime=2006-01-02"`
	MoodScore int                  `json:"moodScore" validate:"required,min=1,max=10"`
	Mood      string               `json:"mood" validate:"omitempty,oneof=sad cozy relaxed neutral positive happy"`
	Weather   *domain.WeatherEntry `json:"weather"`
	Notes     string               `json:"notes" validate:"max=1000"`
}

// ValidationError lists the rejected fields of a mood submission
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "invalid mood entry: " + strings.Join(parts, ", ")
}

// MoodService records and serves the mood history
type MoodService struct {
	repo     MoodRepository
	weather  CurrentWeatherSource
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// NewMoodService creates a new mood service
func NewMoodService(repo MoodRepository, weather CurrentWeatherSource, logger *slog.Logger) *MoodService {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})

	return &MoodService{
		repo:     repo,
		weather:  weather,
		validate: validate,
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// AddMood validates req and stores it as a new entry. When the client sends
// no weather, the current weather of city is recorded.
func (s *MoodService) AddMood(ctx context.Context, city domain.City, req NewMoodRequest) (domain.MoodEntry, error) {
	req.Notes = strings.TrimSpace(req.Notes)
	if err := s.validate.Struct(req); err != nil {
		return domain.MoodEntry{}, toValidationError(err)
	}

	entry := domain.MoodEntry{
		ID:        s.newID(),
		Date:      req.Date,
		MoodScore: req.MoodScore,
		Mood:      req.Mood,
		Weather:   req.Weather,
		Notes:     req.Notes,
	}
	if entry.Date == "" {
		entry.Date = s.now().Format(domain.DateLayout)
	}

	if entry.Weather == nil {
		current, err := s.weather.CurrentWeather(ctx, city)
		if err != nil {
			return domain.MoodEntry{}, fmt.Errorf("mood: failed to get current weather: %w", err)
		}
		w := current.Entry()
		entry.Weather = &w
	}

	if err := s.repo.SaveMood(ctx, entry); err != nil {
		return domain.MoodEntry{}, fmt.Errorf("mood: failed to save entry: %w", err)
	}

	s.logger.Info("mood recorded", "id", entry.ID, "date", entry.Date, "score", entry.MoodScore)
	return entry, nil
}

// History returns every recorded entry
func (s *MoodService) History(ctx context.Context) ([]domain.MoodEntry, error) {
	entries, err := s.repo.ListMoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("mood: failed to list history: %w", err)
	}
	return entries, nil
}

// Today returns today's entry or domain.ErrNotFound
func (s *MoodService) Today(ctx context.Context) (domain.MoodEntry, error) {
	return s.repo.GetMoodByDate(ctx, s.now().Format(domain.DateLayout))
}

func toValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("mood: validation failed: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fmt.Sprintf("failed on '%s'", fe.Tag())
	}
	return &ValidationError{Fields: fields}
}
