package fees

import (
	"database/sql"
	"strings"

	"meridian-schools/app/database"
	"meridian-schools/app/identity"
	"meridian-schools/app/models"

	"github.com/gofiber/fiber/v2"
)

type FeeStructureRequest struct {
	AcademicYear string                  `json:"academic_year" validate:"required"`
	ClassID      *int                    `json:"class_id,omitempty"`
	ClassName    string                  `json:"class_name,omitempty"`
	FeeTypeID    string                  `json:"fee_type_id" validate:"required,uuid"`
	TotalAmount  float64                 `json:"total_amount" validate:"required,gt=0"`
	Installments []FeeInstallmentRequest `json:"installments" validate:"required,min=1,dive"`
}

type FeeInstallmentRequest struct {
	Name          string            `json:"name" validate:"required"`
	DueDate       models.CustomTime `json:"due_date" validate:"required"`
	Amount        float64           `json:"amount" validate:"required,gt=0"`
	PenaltyAmount float64           `json:"penalty_amount" validate:"gte=0"`
}

// resolveClassRef turns the request's class id or name into the deterministic
// class UUID, looking the name up first when an integer id was supplied.
func resolveClassRef(db *sql.DB, tenantID, campusID string, req *FeeStructureRequest) (ref, name string, err error) {
	name = strings.TrimSpace(req.ClassName)
	if req.ClassID != nil {
		name, err = database.GetClassNameByID(db, tenantID, campusID, *req.ClassID)
		if err != nil {
			return "", "", err
		}
	}
	if name == "" {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "class_id or class_name is required")
	}
	return identity.ClassUUID(campusID, name).String(), name, nil
}

func structureFromRequest(req *FeeStructureRequest, tenantID, campusID, classRef, className string) *models.FeeStructure {
	fs := &models.FeeStructure{
		TenantID:     tenantID,
		CampusID:     campusID,
		AcademicYear: req.AcademicYear,
		ClassRef:     classRef,
		ClassName:    className,
		FeeTypeID:    req.FeeTypeID,
		TotalAmount:  req.TotalAmount,
	}
	for _, inst := range req.Installments {
		fs.Installments = append(fs.Installments, models.FeeInstallment{
			Name:          inst.Name,
			DueDate:       inst.DueDate,
			Amount:        inst.Amount,
			PenaltyAmount: inst.PenaltyAmount,
		})
	}
	return fs
}

// CreateFeeStructureAPI creates a structure and its installments atomically.
func CreateFeeStructureAPI(c *fiber.Ctx, db *sql.DB) error {
	var req FeeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	tenantID, campusID := tenantScope(c)
	classRef, className, err := resolveClassRef(db, tenantID, campusID, &req)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return fe
		}
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	fs := structureFromRequest(&req, tenantID, campusID, classRef, className)
	if err := database.CreateFeeStructure(db, fs); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee structure: "+err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    fs,
		"message": "Fee structure created successfully",
	})
}

// GetFeeStructuresAPI lists the campus's structures with installments.
func GetFeeStructuresAPI(c *fiber.Ctx, db *sql.DB) error {
	tenantID, campusID := tenantScope(c)

	structures, err := database.GetAllFeeStructures(db, tenantID, campusID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee structures")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    structures,
	})
}

// GetFeeStructureByIDAPI fetches one structure with its installments.
func GetFeeStructureByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	tenantID, campusID := tenantScope(c)

	fs, err := database.GetFeeStructureByID(db, tenantID, campusID, c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fs,
	})
}

// UpdateFeeStructureAPI updates the scalar fields and replaces the whole
// installment list; partial installment edits resend the complete list.
func UpdateFeeStructureAPI(c *fiber.Ctx, db *sql.DB) error {
	var req FeeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	tenantID, campusID := tenantScope(c)
	classRef, className, err := resolveClassRef(db, tenantID, campusID, &req)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return fe
		}
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	fs := structureFromRequest(&req, tenantID, campusID, classRef, className)
	fs.ID = c.Params("id")
	if err := database.UpdateFeeStructure(db, fs); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update fee structure: "+err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fs,
		"message": "Fee structure updated successfully",
	})
}

// DeleteFeeStructureAPI deletes a structure; installments cascade away.
func DeleteFeeStructureAPI(c *fiber.Ctx, db *sql.DB) error {
	tenantID, campusID := tenantScope(c)
	if err := database.DeleteFeeStructure(db, tenantID, campusID, c.Params("id")); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Fee structure deleted successfully",
	})
}
