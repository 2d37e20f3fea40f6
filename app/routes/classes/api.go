package classes

import (
	"database/sql"

	"meridian-schools/app/database"

	"github.com/gofiber/fiber/v2"
)

// GetClassesAPI lists the campus's active classes.
func GetClassesAPI(c *fiber.Ctx, db *sql.DB) error {
	tenantID, _ := c.Locals("tenant_id").(string)
	campusID, _ := c.Locals("campus_id").(string)

	classes, err := database.GetClassesForCampus(db, tenantID, campusID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch classes")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    classes,
	})
}
