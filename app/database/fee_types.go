package database

import (
	"database/sql"
	"fmt"

	"meridian-schools/app/models"
)

// CreateFeeType inserts a new fee type scoped to the tenant/campus.
func CreateFeeType(db *sql.DB, ft *models.FeeType) error {
	query := `INSERT INTO fee_types (tenant_id, campus_id, name, description)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, ft.TenantID, ft.CampusID, ft.Name, ft.Description).
		Scan(&ft.ID, &ft.CreatedAt, &ft.UpdatedAt)
}

// GetFeeTypes lists the campus's fee types ordered by name.
func GetFeeTypes(db *sql.DB, tenantID, campusID string) ([]models.FeeType, error) {
	query := `SELECT id, tenant_id, campus_id, name, description, created_at, updated_at
			  FROM fee_types
			  WHERE tenant_id = $1 AND campus_id = $2
			  ORDER BY name ASC`
	rows, err := db.Query(query, tenantID, campusID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feeTypes := make([]models.FeeType, 0)
	for rows.Next() {
		var ft models.FeeType
		if err := rows.Scan(&ft.ID, &ft.TenantID, &ft.CampusID, &ft.Name,
			&ft.Description, &ft.CreatedAt, &ft.UpdatedAt); err != nil {
			return nil, err
		}
		feeTypes = append(feeTypes, ft)
	}
	return feeTypes, rows.Err()
}

// UpdateFeeType applies a partial update. Nil fields in upd keep the stored
// value.
func UpdateFeeType(db *sql.DB, tenantID, campusID, id string, upd models.FeeTypeUpdate) error {
	query := `UPDATE fee_types
			  SET name = COALESCE($1, name),
			      description = COALESCE($2, description),
			      updated_at = NOW()
			  WHERE id = $3 AND tenant_id = $4 AND campus_id = $5`
	result, err := db.Exec(query, upd.Name, upd.Description, id, tenantID, campusID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("fee type %s not found", id)
	}
	return nil
}

// DeleteFeeType removes a fee type.
func DeleteFeeType(db *sql.DB, tenantID, campusID, id string) error {
	result, err := db.Exec(
		`DELETE FROM fee_types WHERE id = $1 AND tenant_id = $2 AND campus_id = $3`,
		id, tenantID, campusID,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("fee type %s not found", id)
	}
	return nil
}
