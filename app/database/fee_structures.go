package database

import (
	"database/sql"
	"fmt"

	"meridian-schools/app/models"
)

// CreateFeeStructure inserts a structure and all of its installments in one
// transaction; a failed installment insert rolls the structure back too, so a
// structure without its installments is never visible.
func CreateFeeStructure(db *sql.DB, fs *models.FeeStructure) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO fee_structures (tenant_id, campus_id, academic_year, class_ref, fee_type_id, total_amount)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query, fs.TenantID, fs.CampusID, fs.AcademicYear, fs.ClassRef,
		fs.FeeTypeID, fs.TotalAmount).Scan(&fs.ID, &fs.CreatedAt, &fs.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert fee structure: %v", err)
	}

	if err = insertInstallments(tx, fs); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateFeeStructure updates the scalar fields, then replaces the whole
// installment list (delete-then-reinsert) in the same transaction. There is
// no per-installment patch; callers resend the complete list.
func UpdateFeeStructure(db *sql.DB, fs *models.FeeStructure) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE fee_structures
			  SET academic_year = $1, class_ref = $2, fee_type_id = $3, total_amount = $4, updated_at = NOW()
			  WHERE id = $5 AND tenant_id = $6 AND campus_id = $7`
	result, err := tx.Exec(query, fs.AcademicYear, fs.ClassRef, fs.FeeTypeID,
		fs.TotalAmount, fs.ID, fs.TenantID, fs.CampusID)
	if err != nil {
		return fmt.Errorf("failed to update fee structure: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("fee structure %s not found", fs.ID)
	}

	if _, err = tx.Exec(`DELETE FROM fee_installments WHERE structure_id = $1`, fs.ID); err != nil {
		return fmt.Errorf("failed to clear installments: %v", err)
	}
	if err = insertInstallments(tx, fs); err != nil {
		return err
	}
	return tx.Commit()
}

func insertInstallments(tx *sql.Tx, fs *models.FeeStructure) error {
	query := `INSERT INTO fee_installments (structure_id, name, due_date, amount, penalty_amount)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	for i := range fs.Installments {
		inst := &fs.Installments[i]
		inst.StructureID = fs.ID
		err := tx.QueryRow(query, fs.ID, inst.Name, inst.DueDate, inst.Amount, inst.PenaltyAmount).
			Scan(&inst.ID)
		if err != nil {
			return fmt.Errorf("failed to insert installment %q: %v", inst.Name, err)
		}
	}
	return nil
}

// DeleteFeeStructure removes a structure; installments cascade.
func DeleteFeeStructure(db *sql.DB, tenantID, campusID, id string) error {
	result, err := db.Exec(
		`DELETE FROM fee_structures WHERE id = $1 AND tenant_id = $2 AND campus_id = $3`,
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
		return fmt.Errorf("fee structure %s not found", id)
	}
	return nil
}

// GetFeeStructureByID fetches one structure with its installments ordered by
// due date then name, resolving the class ref back to a display name.
func GetFeeStructureByID(db *sql.DB, tenantID, campusID, id string) (*models.FeeStructure, error) {
	query := `SELECT s.id, s.tenant_id, s.campus_id, s.academic_year, s.class_ref,
			  s.fee_type_id, ft.name, s.total_amount, s.created_at, s.updated_at
			  FROM fee_structures s
			  JOIN fee_types ft ON s.fee_type_id = ft.id
			  WHERE s.id = $1 AND s.tenant_id = $2 AND s.campus_id = $3`

	var fs models.FeeStructure
	err := db.QueryRow(query, id, tenantID, campusID).Scan(
		&fs.ID, &fs.TenantID, &fs.CampusID, &fs.AcademicYear, &fs.ClassRef,
		&fs.FeeTypeID, &fs.FeeTypeName, &fs.TotalAmount, &fs.CreatedAt, &fs.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("fee structure %s not found", id)
		}
		return nil, err
	}

	fs.Installments, err = getInstallments(db, fs.ID)
	if err != nil {
		return nil, err
	}

	classIndex, err := GetClassRefIndex(db, tenantID, campusID)
	if err != nil {
		return nil, err
	}
	fs.ClassName = classIndex[fs.ClassRef]
	return &fs, nil
}

// GetAllFeeStructures lists the campus's structures with nested installments.
func GetAllFeeStructures(db *sql.DB, tenantID, campusID string) ([]models.FeeStructure, error) {
	query := `SELECT s.id, s.tenant_id, s.campus_id, s.academic_year, s.class_ref,
			  s.fee_type_id, ft.name, s.total_amount, s.created_at, s.updated_at
			  FROM fee_structures s
			  JOIN fee_types ft ON s.fee_type_id = ft.id
			  WHERE s.tenant_id = $1 AND s.campus_id = $2
			  ORDER BY s.academic_year DESC, ft.name ASC`
	rows, err := db.Query(query, tenantID, campusID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	structures := make([]models.FeeStructure, 0)
	for rows.Next() {
		var fs models.FeeStructure
		if err := rows.Scan(&fs.ID, &fs.TenantID, &fs.CampusID, &fs.AcademicYear, &fs.ClassRef,
			&fs.FeeTypeID, &fs.FeeTypeName, &fs.TotalAmount, &fs.CreatedAt, &fs.UpdatedAt); err != nil {
			return nil, err
		}
		structures = append(structures, fs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	classIndex, err := GetClassRefIndex(db, tenantID, campusID)
	if err != nil {
		return nil, err
	}
	for i := range structures {
		structures[i].ClassName = classIndex[structures[i].ClassRef]
		structures[i].Installments, err = getInstallments(db, structures[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return structures, nil
}

func getInstallments(db *sql.DB, structureID string) ([]models.FeeInstallment, error) {
	query := `SELECT id, structure_id, name, due_date, amount, penalty_amount
			  FROM fee_installments
			  WHERE structure_id = $1
			  ORDER BY due_date ASC, name ASC`
	rows, err := db.Query(query, structureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	installments := make([]models.FeeInstallment, 0)
	for rows.Next() {
		var inst models.FeeInstallment
		if err := rows.Scan(&inst.ID, &inst.StructureID, &inst.Name, &inst.DueDate,
			&inst.Amount, &inst.PenaltyAmount); err != nil {
			return nil, err
		}
		installments = append(installments, inst)
	}
	return installments, rows.Err()
}
