package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heatguard/backend/internal/observability"
	"github.com/heatguard/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, dashboardSvc *service.DashboardService, forecastSvc *service.ForecastService, sessions *service.SessionManager, recorder *observability.Recorder) {
	handler := NewHandler(dashboardSvc, forecastSvc, sessions)

	// Health check and Prometheus scrape endpoint
	app.Get("/health", handler.HealthCheck)
	if recorder != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(recorder.Registry, promhttp.HandlerOpts{})))
	}

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Reference data
		api.Get("/locations", handler.ListLocations)
		api.Get("/locations/:key", handler.GetLocation)
		api.Get("/locations/:key/climate", handler.GetClimate)
		api.Get("/plans", handler.ListPlans)
		api.Get("/plans/:id", handler.GetPlan)

		// Stateless computation
		api.Post("/metrics", handler.ComputeMetrics)

		// Simulation sessions
		sessionRoutes := api.Group("/sessions")
		sessionRoutes.Post("/", handler.CreateSession)
		sessionRoutes.Get("/:id", handler.GetSession)
		sessionRoutes.Patch("/:id", handler.UpdateSession)
		sessionRoutes.Delete("/:id", handler.CloseSession)
		sessionRoutes.Post("/:id/actions/:action", handler.ApplyAction)
		sessionRoutes.Post("/:id/clock", handler.StartClock)
		sessionRoutes.Delete("/:id/clock", handler.StopClock)
		sessionRoutes.Get("/:id/dashboard", handler.GetSessionDashboard)
		sessionRoutes.Get("/:id/forecast", handler.GetSessionForecast)
		sessionRoutes.Get("/:id/incidents", handler.GetSessionIncidents)
		sessionRoutes.Get("/:id/stream", handler.StreamSession)
	}
}
