package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medconnect/clinic-api/controllers"
	"github.com/medconnect/clinic-api/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register/patient", controllers.RegisterPatient)
	auth.Post("/register/doctor", controllers.RegisterDoctor)
	auth.Post("/verify-email", controllers.VerifyEmail)
	auth.Post("/resend-verification", controllers.ResendVerification)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetProfile)
}
