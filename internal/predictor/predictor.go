// Package predictor estimates tomorrow's mood from past mood/weather pairs
// and a weather forecast.
//
// Two strategies are provided. SimpleStrategy matches exact weather codes over
// the whole history and adjusts a plain average by the forecast weather.
// AnalysisStrategy looks at the recent window only, matches coarse weather
// buckets and votes on categories. Both are pure: they never fail and are safe
// for concurrent use.
package predictor

import (
	"time"

	"github.com/moodcast/backend/internal/domain"
)

// Strategy turns a mood history and a forecast into an analysed prediction
type Strategy interface {
	Name() string
	Analyze(history []domain.MoodEntry, forecast domain.WeatherEntry) domain.AnalysisResult
}

// Predict runs the simple strategy and returns only the prediction
func Predict(history []domain.MoodEntry, forecast domain.WeatherEntry) domain.Prediction {
	return SimpleStrategy{}.Predict(history, forecast)
}

// PredictWithAnalysis runs the analysis strategy against the current time
func PredictWithAnalysis(history []domain.MoodEntry, forecast domain.WeatherEntry) domain.AnalysisResult {
	return NewAnalysisStrategy(DefaultWindow, time.Now).Analyze(history, forecast)
}
