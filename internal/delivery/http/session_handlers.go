package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/heatguard/backend/internal/domain"
	"github.com/heatguard/backend/internal/service"
)

// parseControls decodes an optional ControlUpdate body
func parseControls(c *fiber.Ctx) (service.ControlUpdate, error) {
	var u service.ControlUpdate
	if len(c.Body()) == 0 {
		return u, nil
	}
	if err := c.BodyParser(&u); err != nil {
		return u, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return u, nil
}

// CreateSession opens a simulation session from the default controls and any
// posted overrides. The session clock starts immediately.
func (h *Handler) CreateSession(c *fiber.Ctx) error {
	u, err := parseControls(c)
	if err != nil {
		return err
	}

	in := domain.DefaultSimulationInput()
	in.Location = "" // resolved to the configured default
	for _, t := range u.Transitions() {
		in = t(in)
	}

	snap, err := h.sessions.Create(c.Context(), in)
	if err != nil {
		return statusError(err, "Failed to create session")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    snap,
	})
}

// GetSession returns the current session snapshot
func (h *Handler) GetSession(c *fiber.Ctx) error {
	snap, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return statusError(err, "Failed to fetch session")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    snap,
	})
}

// UpdateSession applies a partial control change
func (h *Handler) UpdateSession(c *fiber.Ctx) error {
	u, err := parseControls(c)
	if err != nil {
		return err
	}

	snap, err := h.sessions.Apply(c.Context(), c.Params("id"), u.Transitions()...)
	if err != nil {
		return statusError(err, "Failed to update session")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    snap,
	})
}

// ApplyAction runs a named emission-reduction action
func (h *Handler) ApplyAction(c *fiber.Ctx) error {
	action, err := service.ActionByName(c.Params("action"))
	if err != nil {
		return statusError(err, "Failed to apply action")
	}

	snap, err := h.sessions.Apply(c.Context(), c.Params("id"), action)
	if err != nil {
		return statusError(err, "Failed to apply action")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    snap,
	})
}

// StartClock resumes the session clock
func (h *Handler) StartClock(c *fiber.Ctx) error {
	snap, err := h.sessions.StartClock(c.Params("id"))
	if err != nil {
		return statusError(err, "Failed to start clock")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    snap,
	})
}

// StopClock pauses the session clock
func (h *Handler) StopClock(c *fiber.Ctx) error {
	snap, err := h.sessions.StopClock(c.Params("id"))
	if err != nil {
		return statusError(err, "Failed to stop clock")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    snap,
	})
}

// CloseSession stops the clock and forgets the session
func (h *Handler) CloseSession(c *fiber.Ctx) error {
	if err := h.sessions.Close(c.Params("id")); err != nil {
		return statusError(err, "Failed to close session")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetSessionDashboard assembles every dashboard panel for the session
func (h *Handler) GetSessionDashboard(c *fiber.Ctx) error {
	snap, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return statusError(err, "Failed to fetch session")
	}

	data, err := h.dashboardSvc.GetDashboard(c.Context(), snap.Input)
	if err != nil {
		return statusError(err, "Failed to fetch dashboard data")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// GetSessionForecast returns the weather and projection panels for the session
func (h *Handler) GetSessionForecast(c *fiber.Ctx) error {
	snap, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return statusError(err, "Failed to fetch session")
	}

	forecast, err := h.forecastSvc.GetForecast(c.Context(), snap.Input)
	if err != nil {
		return statusError(err, "Failed to fetch forecast")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    forecast,
	})
}

// GetSessionIncidents returns the incident history for the session
func (h *Handler) GetSessionIncidents(c *fiber.Ctx) error {
	snap, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return statusError(err, "Failed to fetch session")
	}

	incidents, err := h.dashboardSvc.GetIncidents(c.Context(), snap.Input)
	if err != nil {
		return statusError(err, "Failed to fetch incidents")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    incidents,
	})
}
