package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodcast/backend/internal/domain"
)

func weather(temp float64, code int) *domain.WeatherEntry {
	return &domain.WeatherEntry{Temperature: temp, WeatherCode: code, Time: "2026-10-14T12:00"}
}

func TestPredict_EmptyHistoryDefaults(t *testing.T) {
	tests := []struct {
		name     string
		forecast domain.WeatherEntry
		want     domain.MoodType
	}{
		{"sunny and warm", *weather(20, 0), domain.MoodPositive},
		{"mainly clear", *weather(15, 1), domain.MoodPositive},
		{"rainy and mild", *weather(12, 61), domain.MoodCozy},
		{"rainy and cold", *weather(5, 61), domain.MoodRelaxed},
		{"sunny and cold", *weather(-3, 0), domain.MoodRelaxed},
		{"overcast", *weather(15, 3), domain.MoodNeutral},
		{"freezing rain is not rainy here", *weather(12, 66), domain.MoodNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Predict(nil, tt.forecast)
			assert.Equal(t, tt.want, p.Type)
			assert.Equal(t, 0.3, p.Confidence)
			assert.Equal(t, Recommendations(tt.want), p.Recommendations)
			assert.Nil(t, p.ExpectedMoodScore)
		})
	}
}

func TestPredict_SingleExactMatch(t *testing.T) {
	history := []domain.MoodEntry{{ID: "1", Date: "2026-10-01", MoodScore: 8, Weather: weather(20, 0)}}

	p := Predict(history, *weather(21, 0))

	assert.Equal(t, domain.MoodPositive, p.Type)
	assert.InDelta(t, 0.1, p.Confidence, 1e-9)
}

func TestPredict_SimilarDaysConfidenceCap(t *testing.T) {
	var history []domain.MoodEntry
	for i := 0; i < 12; i++ {
		history = append(history, domain.MoodEntry{MoodScore: 6, Weather: weather(10, 3)})
	}

	p := Predict(history, *weather(14, 3))

	assert.Equal(t, domain.MoodNeutral, p.Type)
	assert.Equal(t, 0.95, p.Confidence)
}

func TestPredict_ExactMatchRequiresSameCode(t *testing.T) {
	history := []domain.MoodEntry{
		{MoodScore: 9, Weather: weather(20, 1)},
		{MoodScore: 9, Weather: weather(30, 0)},
		{MoodScore: 9},
	}

	res := SimpleStrategy{}.Analyze(history, *weather(20, 0))

	assert.Equal(t, 0, res.SimilarDaysCount)
	assert.Equal(t, []string{"using_general_pattern"}, res.ConfidenceFactors)
	assert.Equal(t, 0.5, res.Prediction.Confidence)
}

func TestPredict_GeneralPatternWeatherImpact(t *testing.T) {
	history := []domain.MoodEntry{
		{MoodScore: 4, Weather: weather(30, 95)},
		{MoodScore: 6, Weather: weather(30, 95)},
	}

	tests := []struct {
		name     string
		forecast domain.WeatherEntry
		want     domain.MoodType
	}{
		{"sunny perfect +1.5", *weather(20, 0), domain.MoodNeutral},
		{"sunny hot +1.0", *weather(28, 1), domain.MoodNeutral},
		{"rainy cold -1.5", *weather(5, 63), domain.MoodRelaxed},
		{"rainy mild -0.5", *weather(15, 80), domain.MoodCozy},
		{"cold -1.0", *weather(2, 71), domain.MoodCozy},
		{"neutral 0", *weather(15, 3), domain.MoodCozy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Predict(history, tt.forecast)
			assert.Equal(t, tt.want, p.Type)
			assert.Equal(t, 0.5, p.Confidence)
		})
	}
}

func TestWeatherImpact(t *testing.T) {
	assert.Equal(t, 1.5, weatherImpact(*weather(18, 0)))
	assert.Equal(t, 1.5, weatherImpact(*weather(25, 1)))
	assert.Equal(t, 1.0, weatherImpact(*weather(26, 0)))
	assert.Equal(t, -1.5, weatherImpact(*weather(9.9, 65)))
	assert.Equal(t, -0.5, weatherImpact(*weather(10, 82)))
	assert.Equal(t, -1.0, weatherImpact(*weather(0, 45)))
	assert.Equal(t, 0.0, weatherImpact(*weather(20, 2)))
}

func TestSimpleMoodType_NeverSad(t *testing.T) {
	assert.Equal(t, domain.MoodPositive, simpleMoodType(8))
	assert.Equal(t, domain.MoodNeutral, simpleMoodType(7.99))
	assert.Equal(t, domain.MoodNeutral, simpleMoodType(6))
	assert.Equal(t, domain.MoodCozy, simpleMoodType(4))
	assert.Equal(t, domain.MoodRelaxed, simpleMoodType(3.99))
	assert.Equal(t, domain.MoodRelaxed, simpleMoodType(1))

	history := []domain.MoodEntry{{MoodScore: 1, Mood: "sad", Weather: weather(10, 61)}}
	p := Predict(history, *weather(10, 61))
	assert.Equal(t, domain.MoodRelaxed, p.Type)
}

func TestSimpleStrategy_AnalyzeMetadata(t *testing.T) {
	history := []domain.MoodEntry{
		{ID: "a", MoodScore: 7, Weather: weather(12, 3)},
		{ID: "b", MoodScore: 5, Weather: weather(30, 3)},
	}

	res := SimpleStrategy{}.Analyze(history, *weather(10, 3))

	require.Len(t, res.SimilarDays, 1)
	assert.Equal(t, "a", res.SimilarDays[0].ID)
	assert.Equal(t, 2, res.TotalDaysAnalyzed)
	assert.Equal(t, []string{"found_1_exact_weather_matches"}, res.ConfidenceFactors)
	assert.Equal(t, SimpleStrategyName, SimpleStrategy{}.Name())

	empty := SimpleStrategy{}.Analyze(nil, *weather(10, 3))
	assert.Equal(t, []string{"no_history_using_default"}, empty.ConfidenceFactors)
	assert.NotNil(t, empty.SimilarDays)
}
