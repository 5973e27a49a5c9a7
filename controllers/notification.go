package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/medconnect/clinic-api/utils"
)

// MyNotifications returns the authenticated user's latest notifications.
func MyNotifications(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	items, err := Notifications.Latest(c.Context(), userID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch notifications",
			Error:   err.Error(),
		})
	}

	unread, err := Notifications.UnreadCount(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to count notifications",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"notifications": items,
		"unread":        unread,
	})
}

// MarkNotificationRead marks one of the user's notifications as read.
func MarkNotificationRead(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid notification id",
		})
	}

	if err := Notifications.MarkRead(c.Context(), userID, uint(id)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Notification not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead marks every unread notification of the user.
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := Notifications.MarkAllRead(c.Context(), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update notifications",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}
