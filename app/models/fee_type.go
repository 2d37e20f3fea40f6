package models

import "time"

// FeeType represents a named category of charge (e.g. "Tuition", "Transport").
type FeeType struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	CampusID    string    `json:"campus_id"`
	Name        string    `json:"name" validate:"required"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FeeTypeUpdate carries a partial update for a fee type. Nil fields are left
// untouched; a non-nil pointer to an empty string clears the column.
type FeeTypeUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
