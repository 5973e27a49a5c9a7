package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medconnect/clinic-api/controllers"
	"github.com/medconnect/clinic-api/middleware"
	"github.com/medconnect/clinic-api/models"
)

// SetupPatientRoutes configures doctor discovery, booking and the
// patient's own appointment management.
func SetupPatientRoutes(app *fiber.App) {
	// Public doctor directory
	doctors := app.Group("/doctors")
	doctors.Get("/", controllers.ListDoctors)
	doctors.Get("/:id", controllers.GetDoctor)
	doctors.Get("/:id/slots", controllers.GetAvailableSlots)

	patient := app.Group("/patient", middleware.Protected(), middleware.RequireRole(models.RolePatient))
	patient.Post("/appointments", controllers.BookAppointment)
	patient.Get("/appointments", controllers.MyAppointments)
	patient.Patch("/appointments/:id/cancel", controllers.CancelAppointment)
	patient.Post("/doctors/:id/rating", controllers.RateDoctor)
	patient.Get("/reports", controllers.MyReports)
}
