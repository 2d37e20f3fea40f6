package models

import "time"

// User is a staff or portal account used for authentication and role gating.
type User struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	CampusID  string    `json:"campus_id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Roles []*Role `json:"roles,omitempty"`
}

// Role is a named permission group.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
