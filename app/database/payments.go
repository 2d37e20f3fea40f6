package database

import (
	"database/sql"
	"errors"
	"fmt"

	"meridian-schools/app/models"
)

var (
	// ErrNoUnpaidDues rejects automatic-waterfall payments for students with
	// nothing outstanding; accepting unattributed advance payments is a
	// deliberate non-feature.
	ErrNoUnpaidDues = errors.New("student has no unpaid dues to apply the payment to")

	// ErrDuplicatePayment rejects a collect request whose idempotency key was
	// already used, so a retried network call cannot double-charge.
	ErrDuplicatePayment = errors.New("a payment with this idempotency key was already recorded")
)

// CollectPaymentParams describes one lump collection for a student.
// An empty Allocations list means automatic oldest-due-first waterfall; a
// non-empty one means the caller dictates exactly which dues receive how
// much.
type CollectPaymentParams struct {
	TenantID       string
	StudentRef     string
	AmountReceived float64
	Method         models.PaymentMethod
	CollectedBy    string
	Remarks        *string
	IdempotencyKey *string
	Allocations    []ManualAllocation
}

// CollectPaymentResult reports the recorded payment and any surplus the dues
// could not absorb. Surplus is information for the caller, not an error.
type CollectPaymentResult struct {
	Payment           models.FeePayment `json:"payment"`
	AmountUnallocated float64           `json:"amount_unallocated"`
	Message           string            `json:"message"`
}

// CollectPayment records a payment and allocates it across the student's
// outstanding dues in one transaction. The unpaid-dues snapshot is taken with
// row locks so a concurrent payment for the same student cannot allocate
// against stale balances; any validation failure rolls back everything,
// including the payment row inserted up front.
func CollectPayment(db *sql.DB, p CollectPaymentParams) (*CollectPaymentResult, error) {
	if p.AmountReceived <= 0 {
		return nil, fmt.Errorf("total amount received must be greater than zero")
	}
	if !p.Method.Valid() {
		return nil, fmt.Errorf("invalid payment method %q", p.Method)
	}
	if p.StudentRef == "" {
		return nil, fmt.Errorf("student reference is required")
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if p.IdempotencyKey != nil && *p.IdempotencyKey != "" {
		var exists bool
		err = tx.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM fee_payments WHERE tenant_id = $1 AND idempotency_key = $2)`,
			p.TenantID, *p.IdempotencyKey,
		).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check idempotency key: %v", err)
		}
		if exists {
			return nil, ErrDuplicatePayment
		}
	}

	payment := models.FeePayment{
		TenantID:      p.TenantID,
		StudentRef:    p.StudentRef,
		AmountPaid:    p.AmountReceived,
		PaymentMethod: p.Method,
		CollectedBy:   p.CollectedBy,
		Remarks:       p.Remarks,
	}
	err = tx.QueryRow(
		`INSERT INTO fee_payments (tenant_id, student_ref, amount_paid, payment_method, collected_by, remarks, idempotency_key)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, payment_date`,
		p.TenantID, p.StudentRef, p.AmountReceived, string(p.Method), p.CollectedBy, p.Remarks, p.IdempotencyKey,
	).Scan(&payment.ID, &payment.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment: %v", err)
	}

	dues, err := lockUnpaidDues(tx, p.StudentRef)
	if err != nil {
		return nil, err
	}

	// An empty allocation list is not a manual plan; it takes the waterfall
	// path so a student with nothing outstanding still rejects the payment.
	var plan []PlannedAllocation
	var unallocated float64
	if len(p.Allocations) > 0 {
		plan, unallocated, err = PlanManual(dues, p.Allocations, p.AmountReceived)
		if err != nil {
			return nil, err
		}
	} else {
		if len(dues) == 0 {
			return nil, ErrNoUnpaidDues
		}
		plan, unallocated = PlanWaterfall(dues, p.AmountReceived)
	}

	for _, step := range plan {
		if err = applyAllocation(tx, payment.ID, step); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	message := "Payment fully allocated"
	if unallocated > 0 {
		message = fmt.Sprintf("Payment recorded with unallocated surplus of %.2f", unallocated)
	}
	return &CollectPaymentResult{
		Payment:           payment,
		AmountUnallocated: unallocated,
		Message:           message,
	}, nil
}

// lockUnpaidDues snapshots the student's unpaid dues in waterfall order,
// taking row locks that hold until the surrounding transaction ends.
func lockUnpaidDues(tx *sql.Tx, studentRef string) ([]models.StudentFeeDue, error) {
	rows, err := tx.Query(
		`SELECT d.id, d.installment_id, d.discount_amount, d.balance_amount, i.name, i.due_date
		 FROM student_fee_dues d
		 JOIN fee_installments i ON d.installment_id = i.id
		 WHERE d.student_ref = $1 AND d.is_paid = false
		 ORDER BY i.due_date ASC, i.name ASC
		 FOR UPDATE OF d`,
		studentRef,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to lock unpaid dues: %v", err)
	}
	defer rows.Close()

	var dues []models.StudentFeeDue
	for rows.Next() {
		var d models.StudentFeeDue
		if err := rows.Scan(&d.ID, &d.InstallmentID, &d.DiscountAmount, &d.BalanceAmount,
			&d.InstallmentName, &d.InstallmentDue); err != nil {
			return nil, err
		}
		d.StudentRef = studentRef
		dues = append(dues, d)
	}
	return dues, rows.Err()
}

// applyAllocation reduces a due's balance and records the allocation row. The
// balance mutation is a single clamped UPDATE so it can never go negative and
// never races an interleaved writer with a read-then-write gap.
func applyAllocation(tx *sql.Tx, paymentID string, step PlannedAllocation) error {
	_, err := tx.Exec(
		`UPDATE student_fee_dues
		 SET balance_amount = GREATEST(balance_amount - $1, 0),
		     is_paid = (balance_amount - $1) <= 0,
		     updated_at = NOW()
		 WHERE id = $2`,
		step.Amount, step.DueID,
	)
	if err != nil {
		return fmt.Errorf("failed to update due %s: %v", step.DueID, err)
	}

	_, err = tx.Exec(
		`INSERT INTO payment_allocations (payment_id, due_id, amount_allocated) VALUES ($1, $2, $3)`,
		paymentID, step.DueID, step.Amount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert allocation for due %s: %v", step.DueID, err)
	}
	return nil
}
