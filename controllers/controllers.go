package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/medconnect/clinic-api/notifications"
	"github.com/medconnect/clinic-api/scheduling"
	"github.com/medconnect/clinic-api/utils"
)

var (
	Scheduler     *scheduling.Engine
	Notifications *notifications.Service
)

// Init wires the handlers to the scheduling engine and notification
// service built in main.
func Init(engine *scheduling.Engine, svc *notifications.Service) {
	Scheduler = engine
	Notifications = svc
}

// schedulingError translates engine errors into specific, displayable
// HTTP responses.
func schedulingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, scheduling.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor, patient or appointment not found",
			Error:   err.Error(),
		})
	case errors.Is(err, scheduling.ErrSlotTaken):
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "This time slot is no longer available",
			Error:   err.Error(),
		})
	case errors.Is(err, scheduling.ErrOutsideAvailability):
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "The requested time is outside the doctor's availability hours",
			Error:   err.Error(),
		})
	case errors.Is(err, scheduling.ErrInvalidTransition):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "This status change is not allowed",
			Error:   err.Error(),
		})
	case errors.Is(err, scheduling.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You are not allowed to modify this appointment",
			Error:   err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Something went wrong, please try again",
			Error:   err.Error(),
		})
	}
}
