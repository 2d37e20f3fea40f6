package database

import (
	"errors"
	"fmt"

	"meridian-schools/app/models"
)

// amountTolerance absorbs floating rounding when comparing money values.
const amountTolerance = 0.01

// ErrInvalidAllocation marks manual-allocation violations (unknown due,
// over-balance amount, overcommitted total); callers map it to a 400 and the
// surrounding transaction rolls the whole payment back.
var ErrInvalidAllocation = errors.New("invalid allocation")

// PlannedAllocation is one step of an allocation plan: apply Amount to DueID.
type PlannedAllocation struct {
	DueID  string
	Amount float64
}

// ManualAllocation is a caller-specified instruction to apply Amount to a
// particular due.
type ManualAllocation struct {
	DueID  string  `json:"due_id" validate:"required,uuid"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// PlanWaterfall walks the student's unpaid dues, which must already be
// ordered oldest due date first (installment name as tie-break), and assigns
// min(remaining, balance) to each until the received amount is exhausted.
// Returns the plan and whatever could not be placed.
func PlanWaterfall(dues []models.StudentFeeDue, amount float64) ([]PlannedAllocation, float64) {
	var plan []PlannedAllocation
	remaining := amount
	for _, due := range dues {
		if remaining <= 0 {
			break
		}
		alloc := due.BalanceAmount
		if remaining < alloc {
			alloc = remaining
		}
		if alloc <= 0 {
			continue
		}
		plan = append(plan, PlannedAllocation{DueID: due.ID, Amount: alloc})
		remaining -= alloc
	}
	if remaining < amountTolerance {
		remaining = 0
	}
	return plan, remaining
}

// PlanManual validates caller-specified allocations against the student's
// unpaid dues and the received amount. Every requested due must be in the
// unpaid set, no single allocation may exceed its due's balance, and the sum
// may not overcommit the received cash. Any violation rejects the whole
// payment.
func PlanManual(dues []models.StudentFeeDue, reqs []ManualAllocation, received float64) ([]PlannedAllocation, float64, error) {
	byID := make(map[string]models.StudentFeeDue, len(dues))
	for _, due := range dues {
		byID[due.ID] = due
	}

	plan := make([]PlannedAllocation, 0, len(reqs))
	allocated := 0.0
	for _, req := range reqs {
		due, ok := byID[req.DueID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: due %s is not among the student's unpaid dues", ErrInvalidAllocation, req.DueID)
		}
		if req.Amount <= 0 {
			return nil, 0, fmt.Errorf("%w: amount for due %s must be positive", ErrInvalidAllocation, req.DueID)
		}
		if req.Amount > due.BalanceAmount+amountTolerance {
			return nil, 0, fmt.Errorf("%w: %.2f exceeds balance %.2f of due %s",
				ErrInvalidAllocation, req.Amount, due.BalanceAmount, req.DueID)
		}
		plan = append(plan, PlannedAllocation{DueID: req.DueID, Amount: req.Amount})
		allocated += req.Amount
	}

	if allocated > received+amountTolerance {
		return nil, 0, fmt.Errorf("%w: allocated total %.2f exceeds amount received %.2f",
			ErrInvalidAllocation, allocated, received)
	}

	unallocated := received - allocated
	if unallocated < amountTolerance {
		unallocated = 0
	}
	return plan, unallocated, nil
}
