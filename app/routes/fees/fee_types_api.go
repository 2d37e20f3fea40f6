package fees

import (
	"database/sql"

	"meridian-schools/app/database"
	"meridian-schools/app/models"

	"github.com/gofiber/fiber/v2"
)

type FeeTypeRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
}

// CreateFeeTypeAPI creates a new fee type scoped to the caller's campus.
func CreateFeeTypeAPI(c *fiber.Ctx, db *sql.DB) error {
	var req FeeTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	tenantID, campusID := tenantScope(c)
	feeType := models.FeeType{
		TenantID:    tenantID,
		CampusID:    campusID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := database.CreateFeeType(db, &feeType); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee type: "+err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    feeType,
		"message": "Fee type created successfully",
	})
}

// GetFeeTypesAPI lists the campus's fee types.
func GetFeeTypesAPI(c *fiber.Ctx, db *sql.DB) error {
	tenantID, campusID := tenantScope(c)

	feeTypes, err := database.GetFeeTypes(db, tenantID, campusID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee types")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    feeTypes,
	})
}

// UpdateFeeTypeAPI applies a partial update; omitted fields stay untouched.
func UpdateFeeTypeAPI(c *fiber.Ctx, db *sql.DB) error {
	var upd models.FeeTypeUpdate
	if err := c.BodyParser(&upd); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if upd.Name != nil && *upd.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Fee type name cannot be empty")
	}

	tenantID, campusID := tenantScope(c)
	if err := database.UpdateFeeType(db, tenantID, campusID, c.Params("id"), upd); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Fee type updated successfully",
	})
}

// DeleteFeeTypeAPI removes a fee type.
func DeleteFeeTypeAPI(c *fiber.Ctx, db *sql.DB) error {
	tenantID, campusID := tenantScope(c)
	if err := database.DeleteFeeType(db, tenantID, campusID, c.Params("id")); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Fee type deleted successfully",
	})
}
