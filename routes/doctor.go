package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medconnect/clinic-api/controllers"
	"github.com/medconnect/clinic-api/middleware"
	"github.com/medconnect/clinic-api/models"
)

// SetupDoctorRoutes configures the doctor's availability, appointment
// and report management.
func SetupDoctorRoutes(app *fiber.App) {
	doctor := app.Group("/doctor", middleware.Protected(), middleware.RequireRole(models.RoleDoctor))

	doctor.Get("/availability", controllers.GetAvailability)
	doctor.Post("/availability", controllers.CreateAvailability)
	doctor.Put("/availability/:id", controllers.UpdateAvailability)
	doctor.Delete("/availability/:id", controllers.DeleteAvailability)

	doctor.Get("/appointments", controllers.DoctorAppointments)
	doctor.Patch("/appointments/:id/status", controllers.UpdateAppointmentStatus)

	doctor.Post("/reports", controllers.CreateReport)
	doctor.Post("/reports/:id/file", controllers.UploadReportFile)

	doctor.Put("/profile", controllers.UpdateDoctorProfile)
	doctor.Post("/profile/image", controllers.UploadDoctorImage)
}
