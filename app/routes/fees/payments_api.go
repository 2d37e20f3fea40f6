package fees

import (
	"database/sql"
	"errors"

	"meridian-schools/app/database"
	"meridian-schools/app/identity"
	"meridian-schools/app/models"

	"github.com/gofiber/fiber/v2"
)

type CollectPaymentRequest struct {
	StudentUsername string                      `json:"student_username,omitempty"`
	StudentID       string                      `json:"student_id,omitempty"`
	TotalAmount     float64                     `json:"total_amount_received" validate:"required,gt=0"`
	PaymentMethod   string                      `json:"payment_method" validate:"required"`
	Remarks         *string                     `json:"remarks,omitempty"`
	IdempotencyKey  *string                     `json:"idempotency_key,omitempty"`
	Allocations     []database.ManualAllocation `json:"allocations,omitempty" validate:"omitempty,dive"`
}

// resolveStudentRef converts the request's student identifier into the
// deterministic student UUID. Usernames are verified against the enrollment
// table; a raw UUID is taken as an already-derived ref.
func resolveStudentRef(db *sql.DB, tenantID string, req *CollectPaymentRequest) (string, error) {
	if req.StudentUsername != "" {
		student, err := database.GetStudentByUsername(db, tenantID, req.StudentUsername)
		if err != nil {
			return "", err
		}
		return identity.StudentUUID(student.Username).String(), nil
	}
	if req.StudentID != "" {
		if identity.IsUUID(req.StudentID) {
			return req.StudentID, nil
		}
		student, err := database.GetStudentByUsername(db, tenantID, req.StudentID)
		if err != nil {
			return "", err
		}
		return identity.StudentUUID(student.Username).String(), nil
	}
	return "", fiber.NewError(fiber.StatusBadRequest, "student_username or student_id is required")
}

// CollectPaymentAPI records a lump payment and allocates it across the
// student's outstanding dues, automatically (oldest first) or per the
// caller's explicit allocation list. All-or-nothing: any invalid allocation
// rejects the whole payment.
func CollectPaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CollectPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if !models.PaymentMethod(req.PaymentMethod).Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "payment_method must be one of Cash, Bank Transfer, Cheque, Online")
	}

	tenantID, _ := tenantScope(c)
	collectedBy, _ := c.Locals("user_id").(string)

	studentRef, err := resolveStudentRef(db, tenantID, &req)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return fe
		}
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	result, err := database.CollectPayment(db, database.CollectPaymentParams{
		TenantID:       tenantID,
		StudentRef:     studentRef,
		AmountReceived: req.TotalAmount,
		Method:         models.PaymentMethod(req.PaymentMethod),
		CollectedBy:    collectedBy,
		Remarks:        req.Remarks,
		IdempotencyKey: req.IdempotencyKey,
		Allocations:    req.Allocations,
	})
	if err != nil {
		if errors.Is(err, database.ErrNoUnpaidDues) ||
			errors.Is(err, database.ErrDuplicatePayment) ||
			errors.Is(err, database.ErrInvalidAllocation) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    result,
		"message": result.Message,
	})
}

// GetPaymentsAPI returns payment history, optionally filtered by student.
func GetPaymentsAPI(c *fiber.Ctx, db *sql.DB) error {
	tenantID, campusID := tenantScope(c)

	payments, err := database.GetAllPayments(db, tenantID, campusID, c.Query("student_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payments,
	})
}

// GetFeeStatsAPI returns campus-wide due and collection aggregates.
func GetFeeStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	tenantID, campusID := tenantScope(c)

	stats, err := database.GetFeeStats(db, tenantID, campusID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee statistics")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}
