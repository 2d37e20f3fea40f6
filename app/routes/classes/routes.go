package classes

import (
	"meridian-schools/app/config"
	"meridian-schools/app/models"
	"meridian-schools/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupClassesRoutes registers the read-only class list the fee catalog
// resolves class ids and names against.
func SetupClassesRoutes(app *fiber.App) {
	classes := app.Group("/classes")
	classes.Use(auth.AuthMiddleware)
	classes.Use(auth.RoleMiddleware(models.RoleAdmin, models.RoleEmployee))

	classes.Get("/", func(c *fiber.Ctx) error {
		return GetClassesAPI(c, config.GetDB())
	})
}
