package http

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, s Services) {
	handler := NewHandler(s)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Predictions
		api.Get("/prediction", handler.GetPrediction)
		api.Get("/prediction/daily", handler.GetDailyPrediction)

		// Weather for the selected city
		api.Get("/weather", handler.GetWeather)
		api.Get("/weather/tomorrow", handler.GetTomorrowWeather)

		// Mood history
		api.Get("/mood-history", handler.GetMoodHistory)
		api.Post("/mood-history", handler.CreateMood)
		api.Get("/mood-history/today", handler.GetTodayMood)

		// City selection
		api.Get("/city", handler.GetCity)
		api.Post("/city", handler.SetCity)
		api.Get("/cities", handler.ListCities)
		api.Get("/cities/nearest", handler.GetNearestCity)
	}
}
