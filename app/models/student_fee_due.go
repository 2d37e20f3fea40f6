package models

import "time"

// StudentFeeDue is a student-specific instance of a fee installment carrying
// a mutable outstanding balance. StudentRef is the deterministic UUID of the
// student's username. Unique per (student_ref, installment_id).
type StudentFeeDue struct {
	ID             string    `json:"id"`
	StudentRef     string    `json:"student_ref"`
	InstallmentID  string    `json:"installment_id"`
	DiscountAmount float64   `json:"discount_amount"`
	BalanceAmount  float64   `json:"balance_amount"`
	IsPaid         bool      `json:"is_paid"`
	PenaltyApplied bool      `json:"penalty_applied"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Enrichment fields populated by ledger queries.
	StudentName     string     `json:"student_name,omitempty"`
	InstallmentName string     `json:"installment_name,omitempty"`
	InstallmentDue  CustomTime `json:"installment_due_date"`
	InstallmentAmt  float64    `json:"installment_amount,omitempty"`
	FeeTypeName     string     `json:"fee_type_name,omitempty"`
	AcademicYear    string     `json:"academic_year,omitempty"`
	ClassName       string     `json:"class_name,omitempty"`
}
