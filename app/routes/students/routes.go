package students

import (
	"meridian-schools/app/config"
	"meridian-schools/app/models"
	"meridian-schools/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentsRoutes registers the enrollment endpoints the fee subsystem
// depends on.
func SetupStudentsRoutes(app *fiber.App) {
	students := app.Group("/students")
	students.Use(auth.AuthMiddleware)

	manage := auth.RoleMiddleware(models.RoleAdmin, models.RoleEmployee)

	students.Get("/", manage, func(c *fiber.Ctx) error {
		return GetStudentsAPI(c, config.GetDB())
	})
	students.Post("/", manage, func(c *fiber.Ctx) error {
		return RegisterStudentAPI(c, config.GetDB())
	})
}
