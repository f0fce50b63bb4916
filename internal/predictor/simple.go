package predictor

import (
	"fmt"
	"math"

	"github.com/moodcast/backend/internal/domain"
)

// SimpleStrategyName identifies the simple strategy in caches and logs
const SimpleStrategyName = "simple"

const (
	simpleTempRadius       = 5.0
	simpleDefaultConf      = 0.3
	simpleGeneralConf      = 0.5
	simpleSimilarConfCap   = 0.95
	simpleSimilarConfScale = 10.0
)

// SimpleStrategy matches days with the exact forecast weather code within 5°C.
// Its score mapping never yields SAD; the lowest bucket is RELAXED.
type SimpleStrategy struct{}

func (SimpleStrategy) Name() string { return SimpleStrategyName }

// Predict returns the prediction for forecast given the full history
func (s SimpleStrategy) Predict(history []domain.MoodEntry, forecast domain.WeatherEntry) domain.Prediction {
	p, _, _ := s.predict(history, forecast)
	return p
}

// Analyze wraps Predict with metadata about the path taken
func (s SimpleStrategy) Analyze(history []domain.MoodEntry, forecast domain.WeatherEntry) domain.AnalysisResult {
	p, similar, factor := s.predict(history, forecast)
	return domain.AnalysisResult{
		Prediction:        p,
		SimilarDaysCount:  len(similar),
		TotalDaysAnalyzed: len(history),
		ConfidenceFactors: []string{factor},
		SimilarDays:       similar,
	}
}

func (s SimpleStrategy) predict(history []domain.MoodEntry, forecast domain.WeatherEntry) (domain.Prediction, []domain.MoodEntry, string) {
	if len(history) == 0 {
		return defaultPrediction(forecast), []domain.MoodEntry{}, "no_history_using_default"
	}

	similar := make([]domain.MoodEntry, 0)
	for _, e := range history {
		if e.Weather != nil && exactWeatherMatch(*e.Weather, forecast) {
			similar = append(similar, e)
		}
	}

	if len(similar) > 0 {
		t := simpleMoodType(averageScore(similar))
		conf := math.Min(float64(len(similar))/simpleSimilarConfScale, simpleSimilarConfCap)
		return newPrediction(t, conf), similar, fmt.Sprintf("found_%d_exact_weather_matches", len(similar))
	}

	adjusted := averageScore(history) + weatherImpact(forecast)
	return newPrediction(simpleMoodType(adjusted), simpleGeneralConf), similar, "using_general_pattern"
}

func exactWeatherMatch(a, b domain.WeatherEntry) bool {
	return temperatureDiff(a, b) <= simpleTempRadius && a.WeatherCode == b.WeatherCode
}

// simpleMoodType maps an average score to a category, with RELAXED at the bottom
func simpleMoodType(avg float64) domain.MoodType {
	switch {
	case avg >= 8:
		return domain.MoodPositive
	case avg >= 6:
		return domain.MoodNeutral
	case avg >= 4:
		return domain.MoodCozy
	}
	return domain.MoodRelaxed
}

// defaultPrediction is used with no history. The checks overwrite each other
// in order, so a cold rainy day ends up RELAXED.
func defaultPrediction(forecast domain.WeatherEntry) domain.Prediction {
	t := domain.MoodNeutral
	if isSunny(forecast) {
		t = domain.MoodPositive
	}
	if isRainy(forecast) {
		t = domain.MoodCozy
	}
	if isCold(forecast) {
		t = domain.MoodRelaxed
	}
	return newPrediction(t, simpleDefaultConf)
}

func averageScore(entries []domain.MoodEntry) float64 {
	var sum float64
	for _, e := range entries {
		sum += float64(e.MoodScore)
	}
	return sum / float64(len(entries))
}

func newPrediction(t domain.MoodType, confidence float64) domain.Prediction {
	return domain.Prediction{
		Type:            t,
		Confidence:      confidence,
		Recommendations: Recommendations(t),
	}
}
