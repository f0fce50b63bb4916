package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/moodcast/backend/internal/domain"
	"github.com/moodcast/backend/internal/predictor"
)

// PredictionService combines the forecast, the mood history and a predictor
// strategy into a served prediction
type PredictionService struct {
	strategy     predictor.Strategy
	forecast     ForecastSource
	history      HistorySource
	cache        PredictionCache
	pick         func(n int) int
	now          func() time.Time
	withAnalysis bool
	logger       *slog.Logger
}

// PredictionOption configures a PredictionService
type PredictionOption func(*PredictionService)

// WithPicker sets the source of the random recommendation index.
// pick(n) must return a value in [0, n).
func WithPicker(pick func(n int) int) PredictionOption {
	return func(s *PredictionService) {
		s.pick = pick
	}
}

// WithClock overrides the timestamp clock
func WithClock(now func() time.Time) PredictionOption {
	return func(s *PredictionService) {
		s.now = now
	}
}

// WithAnalysisSummary includes the analysis block in served payloads
func WithAnalysisSummary() PredictionOption {
	return func(s *PredictionService) {
		s.withAnalysis = true
	}
}

// WithCache puts cache in front of the predictor
func WithCache(cache PredictionCache) PredictionOption {
	return func(s *PredictionService) {
		s.cache = cache
	}
}

// NewPredictionService creates a prediction service for strategy
func NewPredictionService(
	strategy predictor.Strategy,
	forecast ForecastSource,
	history HistorySource,
	logger *slog.Logger,
	opts ...PredictionOption,
) *PredictionService {
	s := &PredictionService{
		strategy: strategy,
		forecast: forecast,
		history:  history,
		pick:     rand.Intn,
		now:      time.Now,
		logger:   logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Predict returns the prediction payload for city, served from cache while valid
func (s *PredictionService) Predict(ctx context.Context, city domain.City) (domain.PredictionResult, error) {
	key := s.strategy.Name() + ":" + city.Name
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	var (
		forecast domain.WeatherEntry
		history  []domain.MoodEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		forecast, err = s.forecast.TomorrowForecast(gctx, city)
		if err != nil {
			return fmt.Errorf("prediction: failed to get forecast: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		entries, err := s.history.History(gctx)
		if err != nil {
			// degrade to an empty history
			s.logger.Warn("prediction: mood history unavailable", "error", err)
			entries = []domain.MoodEntry{}
		}
		history = entries
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.PredictionResult{}, err
	}

	analysis := s.strategy.Analyze(history, forecast)
	p := analysis.Prediction

	result := domain.PredictionResult{
		Prediction:     p,
		Weather:        forecast,
		Recommendation: p.Recommendations[s.pick(len(p.Recommendations))],
		Timestamp:      s.now().UTC(),
		City:           city.Name,
	}
	if s.withAnalysis {
		result.Analysis = &domain.AnalysisSummary{
			SimilarDaysCount:  analysis.SimilarDaysCount,
			TotalDaysAnalyzed: analysis.TotalDaysAnalyzed,
			ConfidenceFactors: analysis.ConfidenceFactors,
			SimilarDays:       analysis.SimilarDays,
		}
	}

	s.logger.Info("prediction generated",
		"strategy", s.strategy.Name(),
		"city", city.Name,
		"type", p.Type,
		"confidence", p.Confidence,
		"history", len(history),
	)

	if s.cache != nil {
		s.cache.Set(ctx, key, result)
	}
	return result, nil
}
