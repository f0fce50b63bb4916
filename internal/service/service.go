package service

import (
	"context"

	"github.com/moodcast/backend/internal/domain"
)

// MoodRepository is re-exported from domain for convenience
type MoodRepository = domain.MoodRepository

// ForecastSource supplies tomorrow's forecast for a city
type ForecastSource interface {
	TomorrowForecast(ctx context.Context, city domain.City) (domain.WeatherEntry, error)
}

// CurrentWeatherSource supplies current conditions for a city
type CurrentWeatherSource interface {
	CurrentWeather(ctx context.Context, city domain.City) (domain.CurrentWeather, error)
}

// HistorySource supplies the mood history
type HistorySource interface {
	History(ctx context.Context) ([]domain.MoodEntry, error)
}
