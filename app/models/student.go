package models

import "time"

// Student is an enrollment record. The fee schema references students by the
// deterministic UUID of Username.
type Student struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	CampusID     string    `json:"campus_id"`
	AcademicYear string    `json:"academic_year" validate:"required"`
	ClassName    string    `json:"class_name" validate:"required"`
	Username     string    `json:"username" validate:"required"`
	FirstName    string    `json:"first_name" validate:"required"`
	LastName     string    `json:"last_name" validate:"required"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayName returns the student's full name for report enrichment.
func (s *Student) DisplayName() string {
	return s.FirstName + " " + s.LastName
}
