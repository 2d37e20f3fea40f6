package models

import "time"

// FeePayment is one lump collection event for a student. Immutable once
// created; allocation rows record how the amount was applied to dues.
type FeePayment struct {
	ID             string        `json:"id"`
	TenantID       string        `json:"tenant_id"`
	StudentRef     string        `json:"student_ref"`
	AmountPaid     float64       `json:"amount_paid"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	CollectedBy    string        `json:"collected_by"`
	Remarks        *string       `json:"remarks,omitempty"`
	IdempotencyKey *string       `json:"idempotency_key,omitempty"`
	PaymentDate    time.Time     `json:"payment_date"`

	// Enrichment for payment history views.
	StudentName string               `json:"student_name,omitempty"`
	Allocations []*PaymentAllocation `json:"allocations,omitempty"`
}

// PaymentAllocation records one payment's application to one due. The sum of
// a payment's allocations never exceeds its amount_paid; any shortfall is
// reported as unallocated surplus, not stored.
type PaymentAllocation struct {
	ID              string    `json:"id"`
	PaymentID       string    `json:"payment_id"`
	DueID           string    `json:"due_id"`
	AmountAllocated float64   `json:"amount_allocated"`
	CreatedAt       time.Time `json:"created_at"`
}
