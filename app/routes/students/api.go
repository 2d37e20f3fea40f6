package students

import (
	"database/sql"
	"log"

	"meridian-schools/app/database"
	"meridian-schools/app/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type RegisterStudentRequest struct {
	AcademicYear string  `json:"academic_year" validate:"required"`
	ClassName    string  `json:"class_name" validate:"required"`
	Username     string  `json:"username" validate:"required"`
	FirstName    string  `json:"first_name" validate:"required"`
	LastName     string  `json:"last_name" validate:"required"`
	Discount     float64 `json:"discount" validate:"gte=0"`
}

// GetStudentsAPI lists enrolled students, optionally narrowed to a class.
func GetStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	tenantID, _ := c.Locals("tenant_id").(string)
	campusID, _ := c.Locals("campus_id").(string)

	academicYear := c.Query("academic_year")
	className := c.Query("class_name")
	if academicYear == "" || className == "" {
		return fiber.NewError(fiber.StatusBadRequest, "academic_year and class_name are required")
	}

	students, err := database.GetEnrolledStudents(db, tenantID, campusID, academicYear, className)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    students,
	})
}

// RegisterStudentAPI enrolls a student and immediately assigns every fee
// structure matching their class/year, so a freshly-registered student starts
// with the right dues without waiting for a batch generation pass.
func RegisterStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req RegisterStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	tenantID, _ := c.Locals("tenant_id").(string)
	campusID, _ := c.Locals("campus_id").(string)

	student := models.Student{
		TenantID:     tenantID,
		CampusID:     campusID,
		AcademicYear: req.AcademicYear,
		ClassName:    req.ClassName,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := database.CreateStudent(db, &student); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to register student: "+err.Error())
	}

	applied, err := database.AssignFeesForEnrollment(db, tenantID, campusID,
		req.AcademicYear, req.ClassName, req.Username, req.Discount)
	if err != nil {
		log.Printf("Failed to assign fees for new student %s: %v", req.Username, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Student registered but fee assignment failed: "+err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"student":       student,
			"dues_assigned": applied,
		},
		"message": "Student registered successfully",
	})
}
