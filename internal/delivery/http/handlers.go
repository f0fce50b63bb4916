package http

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/moodcast/backend/internal/domain"
	"github.com/moodcast/backend/internal/service"
)

// CityCookie holds the selected city name
const CityCookie = "city"

// WeatherProvider supplies forecasts and current conditions
type WeatherProvider interface {
	service.ForecastSource
	service.CurrentWeatherSource
}

// Services are the dependencies of the HTTP layer
type Services struct {
	DailyPrediction *service.PredictionService
	Prediction      *service.PredictionService
	Moods           *service.MoodService
	Weather         WeatherProvider
	Cities          *service.CityCatalog
	Repo            service.MoodRepository
}

// Handler contains all HTTP handlers
type Handler struct {
	Services
}

// NewHandler creates a new handler
func NewHandler(s Services) *Handler {
	return &Handler{Services: s}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	store := "ok"
	if err := h.Repo.Health(ctx); err != nil {
		store = "unavailable"
	}

	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "moodcast-backend",
		"version": "1.0.0",
		"store":   store,
	})
}

// selectedCity resolves the city cookie against the catalog
func (h *Handler) selectedCity(c *fiber.Ctx) domain.City {
	return h.Cities.Resolve(c.Cookies(CityCookie))
}

// GetDailyPrediction returns tomorrow's prediction from the simple strategy
func (h *Handler) GetDailyPrediction(c *fiber.Ctx) error {
	return h.predict(c, h.DailyPrediction)
}

// GetPrediction returns tomorrow's prediction with analysis metadata
func (h *Handler) GetPrediction(c *fiber.Ctx) error {
	return h.predict(c, h.Prediction)
}

func (h *Handler) predict(c *fiber.Ctx, svc *service.PredictionService) error {
	result, err := svc.Predict(c.UserContext(), h.selectedCity(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to generate prediction",
			"details": err.Error(),
		})
	}
	return c.JSON(result)
}

// GetWeather returns current weather for the selected city
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	weather, err := h.Weather.CurrentWeather(c.UserContext(), h.selectedCity(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weather data")
	}
	return c.JSON(weather)
}

// GetTomorrowWeather returns tomorrow's forecast for the selected city
func (h *Handler) GetTomorrowWeather(c *fiber.Ctx) error {
	forecast, err := h.Weather.TomorrowForecast(c.UserContext(), h.selectedCity(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weather forecast")
	}
	return c.JSON(forecast)
}

// GetMoodHistory returns every recorded mood
func (h *Handler) GetMoodHistory(c *fiber.Ctx) error {
	entries, err := h.Moods.History(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch mood history")
	}
	return c.JSON(entries)
}

// CreateMood records a new mood entry
func (h *Handler) CreateMood(c *fiber.Ctx) error {
	var req service.NewMoodRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	entry, err := h.Moods.AddMood(c.UserContext(), h.selectedCity(c), req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   true,
				"message": "Invalid mood entry",
				"fields":  verr.Fields,
			})
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save mood entry")
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// GetTodayMood returns today's mood entry
func (h *Handler) GetTodayMood(c *fiber.Ctx) error {
	entry, err := h.Moods.Today(c.UserContext())
	if errors.Is(err, domain.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "No mood recorded today")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch today's mood")
	}
	return c.JSON(entry)
}

// GetCity returns the selected city
func (h *Handler) GetCity(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"city": h.selectedCity(c).Name})
}

type setCityRequest struct {
	City string `json:"city"`
}

// SetCity stores the selected city in a cookie
func (h *Handler) SetCity(c *fiber.Ctx) error {
	var req setCityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	city, ok := h.Cities.Lookup(req.City)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown city")
	}

	c.Cookie(&fiber.Cookie{
		Name:     CityCookie,
		Value:    city.Name,
		Path:     "/",
		HTTPOnly: false,
		Expires:  time.Now().AddDate(1, 0, 0),
	})

	return c.JSON(fiber.Map{"ok": true, "city": city.Name})
}

// ListCities returns the city catalog
func (h *Handler) ListCities(c *fiber.Ctx) error {
	return c.JSON(h.Cities.List())
}

// GetNearestCity returns the catalog city closest to lat/lon
func (h *Handler) GetNearestCity(c *fiber.Ctx) error {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		return fiber.NewError(fiber.StatusBadRequest, "lat and lon are required")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fiber.NewError(fiber.StatusBadRequest, "coordinates out of range")
	}

	city, dist := h.Cities.Nearest(lat, lon)
	return c.JSON(fiber.Map{
		"city":        city,
		"distance_km": dist,
	})
}

// ErrorHandler renders errors as JSON
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
