package database

import (
	"database/sql"
	"fmt"

	"meridian-schools/app/identity"
	"meridian-schools/app/models"
)

// GetClassesForCampus lists the campus's active classes.
func GetClassesForCampus(db *sql.DB, tenantID, campusID string) ([]models.Class, error) {
	query := `SELECT id, tenant_id, campus_id, name, is_active
			  FROM classes
			  WHERE tenant_id = $1 AND campus_id = $2 AND is_active = true
			  ORDER BY name ASC`
	rows, err := db.Query(query, tenantID, campusID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make([]models.Class, 0)
	for rows.Next() {
		var c models.Class
		if err := rows.Scan(&c.ID, &c.TenantID, &c.CampusID, &c.Name, &c.IsActive); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// GetClassNameByID resolves a class's integer id to its name within a campus.
func GetClassNameByID(db *sql.DB, tenantID, campusID string, classID int) (string, error) {
	var name string
	err := db.QueryRow(
		`SELECT name FROM classes WHERE id = $1 AND tenant_id = $2 AND campus_id = $3`,
		classID, tenantID, campusID,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("class %d not found", classID)
	}
	return name, err
}

// GetClassRefIndex rebuilds the class_ref -> class name map for a campus by
// recomputing the deterministic UUID of every class. Reverse lookup is
// impossible by construction, so display paths rescan the (small) class list.
func GetClassRefIndex(db *sql.DB, tenantID, campusID string) (map[string]string, error) {
	rows, err := db.Query(
		`SELECT name FROM classes WHERE tenant_id = $1 AND campus_id = $2`,
		tenantID, campusID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[string]string)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		index[identity.ClassUUID(campusID, name).String()] = name
	}
	return index, rows.Err()
}
