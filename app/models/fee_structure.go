package models

import "time"

// FeeStructure represents the total charge owed by students of one class for
// one fee type in one academic year, decomposed into installments.
// ClassRef is a deterministic UUID derived from (campus, class name), not a
// foreign key into the classes table.
type FeeStructure struct {
	ID           string           `json:"id"`
	TenantID     string           `json:"tenant_id"`
	CampusID     string           `json:"campus_id"`
	AcademicYear string           `json:"academic_year" validate:"required"`
	ClassRef     string           `json:"class_ref"`
	ClassName    string           `json:"class_name,omitempty"`
	FeeTypeID    string           `json:"fee_type_id" validate:"required,uuid"`
	FeeTypeName  string           `json:"fee_type_name,omitempty"`
	TotalAmount  float64          `json:"total_amount" validate:"required,gt=0"`
	Installments []FeeInstallment `json:"installments"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// FeeInstallment is one scheduled portion of a fee structure.
type FeeInstallment struct {
	ID            string     `json:"id"`
	StructureID   string     `json:"structure_id"`
	Name          string     `json:"name" validate:"required"`
	DueDate       CustomTime `json:"due_date" validate:"required"`
	Amount        float64    `json:"amount" validate:"required,gt=0"`
	PenaltyAmount float64    `json:"penalty_amount" validate:"gte=0"`
}
