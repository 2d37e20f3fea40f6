package fees

import (
	"database/sql"

	"meridian-schools/app/database"

	"github.com/gofiber/fiber/v2"
)

type GenerateDuesRequest struct {
	AcademicYear string `json:"academic_year" validate:"required"`
	ClassID      int    `json:"class_id" validate:"required"`
}

// GenerateDuesAPI batch-generates dues for every enrolled student of a class.
// Safe to re-run: existing dues are overwritten, never duplicated.
func GenerateDuesAPI(c *fiber.Ctx, db *sql.DB) error {
	var req GenerateDuesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	tenantID, campusID := tenantScope(c)
	summary, err := database.GenerateDuesForClass(db, tenantID, campusID, req.AcademicYear, req.ClassID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    summary,
		"message": "Dues generated successfully",
	})
}

// GetStudentDuesAPI returns the ledger, filterable by student (UUID or
// username), class id and academic year. An empty ledger is a valid result.
func GetStudentDuesAPI(c *fiber.Ctx, db *sql.DB) error {
	tenantID, campusID := tenantScope(c)

	filters := database.StudentDueFilters{
		Student:      c.Query("student_id"),
		ClassID:      c.Query("class_id"),
		AcademicYear: c.Query("academic_year"),
	}

	dues, err := database.GetStudentFeeDues(db, tenantID, campusID, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    dues,
	})
}
