package predictor

import (
	"fmt"
	"math"
	"time"

	"github.com/moodcast/backend/internal/domain"
	"github.com/moodcast/backend/pkg/utils"
)

// AnalysisStrategyName identifies the analysis strategy in caches and logs
const AnalysisStrategyName = "analysis"

// DefaultWindow is the recency window of the analysis strategy
const DefaultWindow = 30 * 24 * time.Hour

const (
	analysisTempRadius = 3.0

	defaultExpectedScore = 6
	defaultConfidence    = 0.3

	similarBaseConf     = 0.4
	similarConfPerDay   = 0.1
	similarConfCap      = 0.8
	agreementBonus      = 0.15
	agreementConfCap    = 0.9
	monthlyBaseConf     = 0.5
	monthlyConfPerEntry = 0.01
	monthlyConfCap      = 0.8

	goodHistoryDays      = 14
	excellentHistoryDays = 25
)

const (
	FactorNoRecentData      = "no_recent_data_using_default"
	FactorMonthlyPatterns   = "using_monthly_patterns"
	FactorGoodHistory       = "good_monthly_history"
	FactorExcellentCoverage = "excellent_monthly_coverage"
)

// AnalysisStrategy predicts from entries inside a recency window, matching
// days by weather bucket within 3°C and voting on categories.
type AnalysisStrategy struct {
	window time.Duration
	now    func() time.Time
}

// NewAnalysisStrategy creates an analysis strategy. A zero window means DefaultWindow.
func NewAnalysisStrategy(window time.Duration, now func() time.Time) *AnalysisStrategy {
	if window <= 0 {
		window = DefaultWindow
	}
	if now == nil {
		now = time.Now
	}
	return &AnalysisStrategy{window: window, now: now}
}

func (s *AnalysisStrategy) Name() string { return AnalysisStrategyName }

// Analyze drops stale and malformed entries, then predicts from similar days
// or, when none match, from the whole recent history.
func (s *AnalysisStrategy) Analyze(history []domain.MoodEntry, forecast domain.WeatherEntry) domain.AnalysisResult {
	recent := s.recentEntries(history)

	if len(recent) == 0 {
		expected := defaultExpectedScore
		return domain.AnalysisResult{
			Prediction: domain.Prediction{
				Type:              domain.MoodNeutral,
				Confidence:        defaultConfidence,
				Recommendations:   Recommendations(domain.MoodNeutral),
				ExpectedMoodScore: &expected,
			},
			ConfidenceFactors: []string{FactorNoRecentData},
			SimilarDays:       []domain.MoodEntry{},
		}
	}

	similar := make([]domain.MoodEntry, 0)
	for _, e := range recent {
		if bucketWeatherMatch(*e.Weather, forecast) {
			similar = append(similar, e)
		}
	}

	var (
		dist       distribution
		confidence float64
		factors    []string
	)
	if len(similar) > 0 {
		dist = newDistribution(similar)
		confidence = semanticConfidence(len(similar), dist)
		factors = append(factors, fmt.Sprintf("found_%d_similar_days", len(similar)))
	} else {
		dist = newDistribution(recent)
		confidence = math.Min(monthlyBaseConf+float64(len(recent))*monthlyConfPerEntry, monthlyConfCap)
		factors = append(factors, FactorMonthlyPatterns)
	}

	if len(recent) >= goodHistoryDays {
		factors = append(factors, FactorGoodHistory)
	}
	if len(recent) >= excellentHistoryDays {
		factors = append(factors, FactorExcellentCoverage)
	}

	t, bucket := dist.dominant()
	p := newPrediction(t, confidence)
	if bucket != nil {
		expected := int(math.Round(bucket.avgScore))
		p.ExpectedMoodScore = &expected
	}

	return domain.AnalysisResult{
		Prediction:        p,
		SimilarDaysCount:  len(similar),
		TotalDaysAnalyzed: len(recent),
		ConfidenceFactors: factors,
		SimilarDays:       similar,
	}
}

// recentEntries keeps entries with a parseable date inside the window and a
// recorded weather
func (s *AnalysisStrategy) recentEntries(history []domain.MoodEntry) []domain.MoodEntry {
	cutoff := s.now().Add(-s.window)
	out := make([]domain.MoodEntry, 0, len(history))
	for _, e := range history {
		if e.Weather == nil {
			continue
		}
		day, err := e.Day()
		if err != nil || day.Before(cutoff) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func bucketWeatherMatch(a, b domain.WeatherEntry) bool {
	return temperatureDiff(a, b) <= analysisTempRadius &&
		domain.BucketOf(a.WeatherCode) == domain.BucketOf(b.WeatherCode)
}

// semanticConfidence grows with the number of similar days and rewards
// complete agreement between them
func semanticConfidence(similarDays int, dist distribution) float64 {
	base := math.Min(similarBaseConf+float64(similarDays)*similarConfPerDay, similarConfCap)
	if len(dist) == 1 {
		return utils.Clamp(base+agreementBonus, 0, agreementConfCap)
	}
	return base
}
