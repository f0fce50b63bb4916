package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/moodcast/backend/internal/domain"
	"github.com/moodcast/backend/pkg/utils"
)

// Fallback forecast used when the upstream provider is unreachable
const (
	FallbackTemperature = 15.0
	FallbackWeatherCode = 2
)

// WeatherService fetches forecasts and current conditions from open-meteo
type WeatherService struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *slog.Logger
	now        func() time.Time
}

// WeatherOption configures a WeatherService
type WeatherOption func(*WeatherService)

// WithWeatherClock overrides the clock used for fallback dates and mock seasons
func WithWeatherClock(now func() time.Time) WeatherOption {
	return func(s *WeatherService) {
		s.now = now
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(c *http.Client) WeatherOption {
	return func(s *WeatherService) {
		s.httpClient = c
	}
}

// NewWeatherService creates a new weather service
func NewWeatherService(baseURL string, timeout time.Duration, logger *slog.Logger, opts ...WeatherOption) *WeatherService {
	s := &WeatherService{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:        "open-meteo",
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 5
			},
		}),
		logger: logger,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type dailyForecastResponse struct {
	Daily struct {
		Time           []string  `json:"time"`
		WeatherCode    []int     `json:"weathercode"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

type currentWeatherResponse struct {
	Current struct {
		Time          string  `json:"time"`
		Temperature   float64 `json:"temperature_2m"`
		Humidity      int     `json:"relativehumidity_2m"`
		Pressure      float64 `json:"pressure_msl"`
		WindSpeed     float64 `json:"windspeed_10m"`
		WindDirection int     `json:"winddirection_10m"`
		CloudCover    int     `json:"cloudcover"`
		WeatherCode   int     `json:"weathercode"`
		IsDay         int     `json:"is_day"`
	} `json:"current"`
}

// TomorrowForecast returns tomorrow's forecast for city. Upstream failures
// yield the fallback forecast; only a cancelled ctx is reported as an error.
func (s *WeatherService) TomorrowForecast(ctx context.Context, city domain.City) (domain.WeatherEntry, error) {
	q := coordinates(city)
	q.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min")
	q.Set("timezone", "auto")
	q.Set("forecast_days", "2")

	var resp dailyForecastResponse
	if err := s.fetch(ctx, q, &resp); err != nil {
		if ctx.Err() != nil {
			return domain.WeatherEntry{}, ctx.Err()
		}
		s.logger.Warn("weather: using fallback forecast", "city", city.Name, "error", err)
		return s.FallbackForecast(), nil
	}

	d := resp.Daily
	if len(d.Time) < 2 || len(d.WeatherCode) < 2 || len(d.TemperatureMax) < 2 || len(d.TemperatureMin) < 2 {
		s.logger.Warn("weather: forecast has no entry for tomorrow", "city", city.Name)
		return s.FallbackForecast(), nil
	}

	return domain.WeatherEntry{
		Temperature: utils.RoundTo((d.TemperatureMax[1]+d.TemperatureMin[1])/2, 1),
		WeatherCode: d.WeatherCode[1],
		Time:        d.Time[1],
	}, nil
}

// FallbackForecast is the forecast assumed when the provider cannot be reached
func (s *WeatherService) FallbackForecast() domain.WeatherEntry {
	return domain.WeatherEntry{
		Temperature: FallbackTemperature,
		WeatherCode: FallbackWeatherCode,
		Time:        s.now().AddDate(0, 0, 1).Format(domain.DateLayout),
	}
}

// CurrentWeather returns current conditions for city, or mock conditions
// when the provider cannot be reached
func (s *WeatherService) CurrentWeather(ctx context.Context, city domain.City) (domain.CurrentWeather, error) {
	q := coordinates(city)
	q.Set("current", "temperature_2m,relativehumidity_2m,pressure_msl,windspeed_10m,winddirection_10m,cloudcover,weathercode,is_day")
	q.Set("timezone", "auto")
	q.Set("wind_speed_unit", "ms")

	var resp currentWeatherResponse
	if err := s.fetch(ctx, q, &resp); err != nil {
		if ctx.Err() != nil {
			return domain.CurrentWeather{}, ctx.Err()
		}
		s.logger.Warn("weather: using mock current weather", "city", city.Name, "error", err)
		return s.mockCurrentWeather(city), nil
	}

	c := resp.Current
	return withDerivedFields(domain.CurrentWeather{
		Temperature:   c.Temperature,
		Humidity:      c.Humidity,
		Pressure:      c.Pressure,
		WindSpeed:     c.WindSpeed,
		WindDirection: c.WindDirection,
		CloudCover:    c.CloudCover,
		WeatherCode:   c.WeatherCode,
		IsDay:         c.IsDay == 1,
		Time:          c.Time,
		City:          city.Name,
	}), nil
}

func (s *WeatherService) fetch(ctx context.Context, q url.Values, out any) error {
	body, err := s.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v1/forecast?"+q.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("weather: failed to create request: %w", err)
		}

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("weather: request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("weather: upstream returned %d", resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("weather: failed to decode response: %w", err)
	}
	return nil
}

func coordinates(city domain.City) url.Values {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(city.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(city.Longitude, 'f', -1, 64))
	return q
}

func withDerivedFields(w domain.CurrentWeather) domain.CurrentWeather {
	w.CloudStatus = cloudStatus(w.CloudCover)
	w.PrecipitationType = precipitationType(w.WeatherCode)
	w.DayNight = "night"
	if w.IsDay {
		w.DayNight = "day"
	}
	return w
}

func cloudStatus(cover int) string {
	switch {
	case cover < 20:
		return "clear"
	case cover < 70:
		return "partly_cloudy"
	}
	return "overcast"
}

func precipitationType(code int) string {
	switch {
	case code >= 51 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "rain"
	case code >= 95 && code <= 99:
		return "storm"
	}
	return "none"
}

// mockCurrentWeather returns simulated seasonal conditions
func (s *WeatherService) mockCurrentWeather(city domain.City) domain.CurrentWeather {
	now := s.now()
	month := now.Month()

	w := domain.CurrentWeather{
		Humidity:      65,
		Pressure:      1015,
		WindSpeed:     3.5,
		WindDirection: 180,
		IsDay:         now.Hour() >= 7 && now.Hour() < 19,
		Time:          now.Format("2006-01-02T15:04"),
		City:          city.Name,
		IsMock:        true,
	}

	switch {
	case month == 12 || month <= 2: // Winter
		w.Temperature, w.WeatherCode, w.CloudCover = -8, 71, 90
	case month <= 5: // Spring
		w.Temperature, w.WeatherCode, w.CloudCover = 12, 2, 50
	case month <= 8: // Summer
		w.Temperature, w.WeatherCode, w.CloudCover = 24, 0, 10
	default: // Autumn
		w.Temperature, w.WeatherCode, w.CloudCover = 8, 3, 85
	}

	return withDerivedFields(w)
}
