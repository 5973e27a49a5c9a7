package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medconnect/clinic-api/controllers"
	"github.com/medconnect/clinic-api/middleware"
	"github.com/medconnect/clinic-api/models"
)

// SetupAdminRoutes configures administration endpoints.
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))

	admin.Get("/dashboard", controllers.Dashboard)
	admin.Get("/users", controllers.ListUsers)

	admin.Get("/doctors/pending", controllers.PendingDoctors)
	admin.Patch("/doctors/:id/approve", controllers.ApproveDoctor)
	admin.Delete("/doctors/:id", controllers.RejectDoctor)

	admin.Get("/messages", controllers.ListContactMessages)
	admin.Patch("/messages/:id/read", controllers.MarkContactMessageRead)
	admin.Delete("/messages/:id", controllers.DeleteContactMessage)
}
