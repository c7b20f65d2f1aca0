package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/heatguard/backend/internal/catalog"
	"github.com/heatguard/backend/internal/domain"
	"github.com/heatguard/backend/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	dashboardSvc *service.DashboardService
	forecastSvc  *service.ForecastService
	sessions     *service.SessionManager
}

// NewHandler creates a new handler
func NewHandler(dashboardSvc *service.DashboardService, forecastSvc *service.ForecastService, sessions *service.SessionManager) *Handler {
	return &Handler{
		dashboardSvc: dashboardSvc,
		forecastSvc:  forecastSvc,
		sessions:     sessions,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	database := "ok"
	status := fiber.StatusOK
	if err := h.dashboardSvc.Health(c.Context()); err != nil {
		database = "unavailable"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   "ok",
		"service":  "heatguard-backend",
		"version":  "1.0.0",
		"database": database,
		"sessions": h.sessions.Count(),
	})
}

// ListLocations returns the location catalog
func (h *Handler) ListLocations(c *fiber.Ctx) error {
	locations, err := h.dashboardSvc.ListLocations(c.Context())
	if err != nil {
		return statusError(err, "Failed to fetch locations")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    locations,
	})
}

// GetLocation returns one location profile. Unknown keys yield the default profile.
func (h *Handler) GetLocation(c *fiber.Ctx) error {
	location, err := h.dashboardSvc.GetLocation(c.Context(), c.Params("key"))
	if err != nil {
		return statusError(err, "Failed to fetch location")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    location,
	})
}

// GetClimate returns the heatwave history summary of a location
func (h *Handler) GetClimate(c *fiber.Ctx) error {
	climate, err := h.forecastSvc.GetClimate(c.Context(), c.Params("key"))
	if err != nil {
		return statusError(err, "Failed to fetch climate summary")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    climate,
	})
}

// metricsResult is the response of a stateless metrics computation
type metricsResult struct {
	Input    domain.SimulationInput `json:"input"`
	Location domain.LocationProfile `json:"location"`
	Metrics  domain.DerivedMetrics  `json:"metrics"`
	Severity domain.Severity        `json:"severity"`
}

// ComputeMetrics derives metrics from a posted snapshot. Omitted fields keep
// their default values and current_temp is used as given.
func (h *Handler) ComputeMetrics(c *fiber.Ctx) error {
	in := domain.DefaultSimulationInput()
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := in.Validate(); err != nil {
		return statusError(err, "Invalid simulation input")
	}

	in, location, metrics, err := h.dashboardSvc.Compute(c.Context(), in, service.TriggerAPI)
	if err != nil {
		return statusError(err, "Failed to compute metrics")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": metricsResult{
			Input:    in,
			Location: location,
			Metrics:  metrics,
			Severity: service.SeverityFor(metrics),
		},
	})
}

// planView is a response plan with its rolled-up costs
type planView struct {
	domain.Plan
	Cost domain.PlanCostSummary `json:"cost"`
}

// ListPlans returns every response plan
func (h *Handler) ListPlans(c *fiber.Ctx) error {
	plans := catalog.Plans()
	views := make([]planView, 0, len(plans))
	for _, p := range plans {
		views = append(views, planView{Plan: p, Cost: catalog.PlanCost(p)})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    views,
	})
}

// GetPlan returns one response plan
func (h *Handler) GetPlan(c *fiber.Ctx) error {
	plan, err := catalog.PlanByID(c.Params("id"))
	if err != nil {
		return statusError(err, "Failed to fetch plan")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    planView{Plan: plan, Cost: catalog.PlanCost(plan)},
	})
}
