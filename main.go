package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/medconnect/clinic-api/controllers"
	"github.com/medconnect/clinic-api/cron"
	"github.com/medconnect/clinic-api/db"
	"github.com/medconnect/clinic-api/logger"
	"github.com/medconnect/clinic-api/notifications"
	"github.com/medconnect/clinic-api/redis"
	"github.com/medconnect/clinic-api/routes"
	"github.com/medconnect/clinic-api/scheduling"
)

func main() {
	logger.Init()
	defer logger.Get().Sync()

	db.Init()
	db.Migrate()
	redis.InitRedis()

	notificationSvc := notifications.NewService(db.DB)
	engine := scheduling.New(scheduling.NewStore(db.DB), notificationSvc, logger.Get())
	controllers.Init(engine, notificationSvc)

	app := fiber.New(fiber.Config{
		AppName: "MedConnect Clinic API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupPatientRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupAdminRoutes(app)
	routes.SetupNotificationRoutes(app)
	routes.SetupContactRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	logger.Get().Info("server starting", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		logger.Get().Fatal("server stopped", zap.Error(err))
	}
}
