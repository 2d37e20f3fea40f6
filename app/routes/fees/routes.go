package fees

import (
	"meridian-schools/app/config"
	"meridian-schools/app/models"
	"meridian-schools/app/routes/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// SetupFeesRoutes registers the fee ledger endpoints. Catalog management, due
// generation and collection are staff-only; students and parents may read
// their own dues and payment history.
func SetupFeesRoutes(app *fiber.App) {
	fees := app.Group("/fees")
	fees.Use(auth.AuthMiddleware)

	manage := auth.RoleMiddleware(models.RoleAdmin, models.RoleEmployee)
	read := auth.RoleMiddleware(models.RoleAdmin, models.RoleEmployee, models.RoleStudent, models.RoleParent)

	// Fee types
	fees.Post("/fee-types", manage, func(c *fiber.Ctx) error {
		return CreateFeeTypeAPI(c, config.GetDB())
	})
	fees.Get("/fee-types", manage, func(c *fiber.Ctx) error {
		return GetFeeTypesAPI(c, config.GetDB())
	})
	fees.Put("/fee-types/:id", manage, func(c *fiber.Ctx) error {
		return UpdateFeeTypeAPI(c, config.GetDB())
	})
	fees.Delete("/fee-types/:id", manage, func(c *fiber.Ctx) error {
		return DeleteFeeTypeAPI(c, config.GetDB())
	})

	// Fee structures
	fees.Post("/fee-structures", manage, func(c *fiber.Ctx) error {
		return CreateFeeStructureAPI(c, config.GetDB())
	})
	fees.Get("/fee-structures", manage, func(c *fiber.Ctx) error {
		return GetFeeStructuresAPI(c, config.GetDB())
	})
	fees.Get("/fee-structures/:id", manage, func(c *fiber.Ctx) error {
		return GetFeeStructureByIDAPI(c, config.GetDB())
	})
	fees.Put("/fee-structures/:id", manage, func(c *fiber.Ctx) error {
		return UpdateFeeStructureAPI(c, config.GetDB())
	})
	fees.Delete("/fee-structures/:id", manage, func(c *fiber.Ctx) error {
		return DeleteFeeStructureAPI(c, config.GetDB())
	})

	// Dues
	fees.Post("/dues/generate", manage, func(c *fiber.Ctx) error {
		return GenerateDuesAPI(c, config.GetDB())
	})
	fees.Get("/dues/student", read, func(c *fiber.Ctx) error {
		return GetStudentDuesAPI(c, config.GetDB())
	})

	// Payments
	fees.Get("/payments", read, func(c *fiber.Ctx) error {
		return GetPaymentsAPI(c, config.GetDB())
	})
	fees.Post("/payments/collect", manage, func(c *fiber.Ctx) error {
		return CollectPaymentAPI(c, config.GetDB())
	})

	// Stats
	fees.Get("/stats", manage, func(c *fiber.Ctx) error {
		return GetFeeStatsAPI(c, config.GetDB())
	})
}

// tenantScope pulls the tenancy context the auth middleware injected.
func tenantScope(c *fiber.Ctx) (tenantID, campusID string) {
	tenantID, _ = c.Locals("tenant_id").(string)
	campusID, _ = c.Locals("campus_id").(string)
	return tenantID, campusID
}
