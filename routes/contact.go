package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medconnect/clinic-api/controllers"
)

// SetupContactRoutes configures the public contact form.
func SetupContactRoutes(app *fiber.App) {
	app.Post("/contact", controllers.SubmitContactMessage)
}
