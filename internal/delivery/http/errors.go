package http

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/heatguard/backend/internal/domain"
)

// ErrorHandler renders every error as {"error": true, "message": ...}
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

// statusError maps domain errors to HTTP errors. Anything unknown is logged
// and reported as a 500 with the given message.
func statusError(err error, message string) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrUnknownPlan):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownAction):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	log.Printf("%s: %v", message, err)
	return fiber.NewError(fiber.StatusInternalServerError, message)
}
