package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medconnect/clinic-api/controllers"
	"github.com/medconnect/clinic-api/middleware"
)

// SetupNotificationRoutes configures the in-app notification feed.
func SetupNotificationRoutes(app *fiber.App) {
	notifications := app.Group("/notifications", middleware.Protected())

	notifications.Get("/", controllers.MyNotifications)
	notifications.Patch("/:id/read", controllers.MarkNotificationRead)
	notifications.Patch("/read-all", controllers.MarkAllNotificationsRead)
}
