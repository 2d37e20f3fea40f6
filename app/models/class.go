package models

// Class is a read-only collaborator record; the fee schema references classes
// through deterministic UUIDs derived from (campus_id, name), never through
// this table's integer id.
type Class struct {
	ID       int    `json:"id"`
	TenantID string `json:"tenant_id"`
	CampusID string `json:"campus_id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}
