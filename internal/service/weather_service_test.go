package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodcast/backend/internal/domain"
)

var (
	testNow  = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	testCity = domain.City{Name: "Moscow", Latitude: 55.7558, Longitude: 37.6173}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWeatherService(t *testing.T, handler http.HandlerFunc) *WeatherService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewWeatherService(server.URL, 2*time.Second, discardLogger(),
		WithWeatherClock(func() time.Time { return testNow }))
}

func TestTomorrowForecast_Success(t *testing.T) {
	svc := newTestWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "55.7558", q.Get("latitude"))
		assert.Equal(t, "37.6173", q.Get("longitude"))
		assert.Equal(t, "2", q.Get("forecast_days"))
		assert.Contains(t, q.Get("daily"), "weathercode")

		w.Write([]byte(`{"daily":{
			"time":["2026-10-14","2026-10-15"],
			"weathercode":[3,61],
			"temperature_2m_max":[12.0,9.4],
			"temperature_2m_min":[4.0,3.0]}}`))
	})

	got, err := svc.TomorrowForecast(context.Background(), testCity)
	require.NoError(t, err)
	assert.Equal(t, domain.WeatherEntry{Temperature: 6.2, WeatherCode: 61, Time: "2026-10-15"}, got)
}

func TestTomorrowForecast_FallbackOnUpstreamFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"daily":`))
		}},
		{"only today", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"daily":{"time":["2026-10-14"],"weathercode":[3],"temperature_2m_max":[1],"temperature_2m_min":[0]}}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestWeatherService(t, tt.handler)

			got, err := svc.TomorrowForecast(context.Background(), testCity)
			require.NoError(t, err)
			assert.Equal(t, domain.WeatherEntry{Temperature: 15, WeatherCode: 2, Time: "2026-10-15"}, got)
		})
	}
}

func TestTomorrowForecast_FallbackWhenUnreachable(t *testing.T) {
	svc := NewWeatherService("http://127.0.0.1:1", time.Second, discardLogger(),
		WithWeatherClock(func() time.Time { return testNow }))

	got, err := svc.TomorrowForecast(context.Background(), testCity)
	require.NoError(t, err)
	assert.Equal(t, svc.FallbackForecast(), got)
}

func TestTomorrowForecast_CancelledContext(t *testing.T) {
	svc := newTestWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.TomorrowForecast(ctx, testCity)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWeatherService_CircuitOpensAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	svc := newTestWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 10; i++ {
		got, err := svc.TomorrowForecast(context.Background(), testCity)
		require.NoError(t, err)
		assert.Equal(t, FallbackWeatherCode, got.WeatherCode)
	}

	// the breaker trips after six consecutive failures
	assert.Equal(t, int32(6), calls.Load())
}

func TestCurrentWeather_Success(t *testing.T) {
	svc := newTestWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ms", r.URL.Query().Get("wind_speed_unit"))
		w.Write([]byte(`{"current":{
			"time":"2026-10-14T12:00",
			"temperature_2m":7.5,
			"relativehumidity_2m":81,
			"pressure_msl":1012.4,
			"windspeed_10m":4.2,
			"winddirection_10m":250,
			"cloudcover":45,
			"weathercode":73,
			"is_day":1}}`))
	})

	got, err := svc.CurrentWeather(context.Background(), testCity)
	require.NoError(t, err)

	assert.Equal(t, 7.5, got.Temperature)
	assert.Equal(t, 81, got.Humidity)
	assert.Equal(t, 73, got.WeatherCode)
	assert.Equal(t, "partly_cloudy", got.CloudStatus)
	assert.Equal(t, "snow", got.PrecipitationType)
	assert.Equal(t, "day", got.DayNight)
	assert.Equal(t, "Moscow", got.City)
	assert.False(t, got.IsMock)
	assert.Equal(t, domain.WeatherEntry{Temperature: 7.5, WeatherCode: 73, Time: "2026-10-14T12:00"}, got.Entry())
}

func TestCurrentWeather_MockOnFailure(t *testing.T) {
	svc := newTestWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	got, err := svc.CurrentWeather(context.Background(), testCity)
	require.NoError(t, err)

	assert.True(t, got.IsMock)
	assert.Equal(t, 8.0, got.Temperature)
	assert.Equal(t, "overcast", got.CloudStatus)
	assert.Equal(t, "day", got.DayNight)
}

func TestDerivedWeatherFields(t *testing.T) {
	assert.Equal(t, "clear", cloudStatus(19))
	assert.Equal(t, "partly_cloudy", cloudStatus(20))
	assert.Equal(t, "overcast", cloudStatus(70))

	assert.Equal(t, "rain", precipitationType(51))
	assert.Equal(t, "rain", precipitationType(67))
	assert.Equal(t, "snow", precipitationType(77))
	assert.Equal(t, "rain", precipitationType(81))
	assert.Equal(t, "storm", precipitationType(95))
	assert.Equal(t, "none", precipitationType(45))
	assert.Equal(t, "none", precipitationType(85))
}
