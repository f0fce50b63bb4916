package predictor

import (
	"math"

	"github.com/moodcast/backend/internal/domain"
)

func isSunny(w domain.WeatherEntry) bool {
	return w.WeatherCode == 0 || w.WeatherCode == 1
}

// isRainy uses the narrower code set of the simple heuristics; the analysis
// buckets also count freezing rain (66, 67) as rainy.
func isRainy(w domain.WeatherEntry) bool {
	switch w.WeatherCode {
	case 61, 63, 65, 80, 81, 82:
		return true
	}
	return false
}

func isCold(w domain.WeatherEntry) bool {
	return w.Temperature < 10
}

func isPerfectTemperature(w domain.WeatherEntry) bool {
	return w.Temperature >= 18 && w.Temperature <= 25
}

// weatherImpact is the mood score adjustment applied when no similar day exists
func weatherImpact(w domain.WeatherEntry) float64 {
	sunny, rainy, cold := isSunny(w), isRainy(w), isCold(w)

	switch {
	case sunny && isPerfectTemperature(w):
		return 1.5
	case sunny:
		return 1.0
	case rainy && cold:
		return -1.5
	case rainy:
		return -0.5
	case cold:
		return -1.0
	}
	return 0
}

func temperatureDiff(a, b domain.WeatherEntry) float64 {
	return math.Abs(a.Temperature - b.Temperature)
}
