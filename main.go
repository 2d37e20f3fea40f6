package main

import (
	"log"

	"meridian-schools/app/config"
	"meridian-schools/app/routes/auth"
	"meridian-schools/app/routes/classes"
	"meridian-schools/app/routes/fees"
	"meridian-schools/app/routes/students"
	"meridian-schools/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// customErrorHandler translates fiber errors into the JSON envelope
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if code == fiber.StatusInternalServerError {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	config.Load()
	defer config.GetDB().Close()

	// Start background scheduler (overdue penalty application)
	services.StartScheduler(config.GetDB())

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Routes
	auth.SetupAuthRoutes(app)
	fees.SetupFeesRoutes(app)
	students.SetupStudentsRoutes(app)
	classes.SetupClassesRoutes(app)

	log.Printf("Starting server on port %s", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
