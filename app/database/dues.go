package database

import (
	"database/sql"
	"fmt"
	"log"

	"meridian-schools/app/identity"
)

// DueGenerationSummary reports a batch generation run. TotalAssigned counts
// students for whom at least one fee structure applied.
type DueGenerationSummary struct {
	TotalStudents int `json:"total_students"`
	TotalAssigned int `json:"total_assigned"`
}

// GenerateDuesForClass expands every fee structure of a class/year into
// per-student due records for all currently-enrolled students, inside one
// transaction for the whole batch. Any error aborts the batch.
func GenerateDuesForClass(db *sql.DB, tenantID, campusID, academicYear string, classID int) (*DueGenerationSummary, error) {
	className, err := GetClassNameByID(db, tenantID, campusID, classID)
	if err != nil {
		return nil, err
	}

	students, err := GetEnrolledStudents(db, tenantID, campusID, academicYear, className)
	if err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	summary := &DueGenerationSummary{TotalStudents: len(students)}
	for _, student := range students {
		applied, err := assignFeesTx(tx, campusID, academicYear, className, student.Username, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to assign fees for %s: %v", student.Username, err)
		}
		if applied > 0 {
			summary.TotalAssigned++
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	log.Printf("Generated dues for class %q (%s): %d/%d students assigned",
		className, academicYear, summary.TotalAssigned, summary.TotalStudents)
	return summary, nil
}

// AssignFeesForEnrollment applies every matching fee structure's installments
// to one student, in its own transaction. Invoked at registration time and by
// the batch generator; the upsert makes it safe to call repeatedly.
func AssignFeesForEnrollment(db *sql.DB, tenantID, campusID, academicYear, className, username string, discount float64) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	applied, err := assignFeesTx(tx, campusID, academicYear, className, username, discount)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return applied, nil
}

// assignFeesTx upserts one StudentFeeDue per installment of every fee
// structure matching (campus, year, class). Insert if absent, otherwise
// overwrite discount/balance/paid flag — re-running generation never
// duplicates a due or double-charges. Returns the number of dues upserted.
func assignFeesTx(tx *sql.Tx, campusID, academicYear, className, username string, discount float64) (int, error) {
	studentRef := identity.StudentUUID(username).String()
	classRef := identity.ClassUUID(campusID, className).String()

	rows, err := tx.Query(
		`SELECT i.id, i.amount
		 FROM fee_installments i
		 JOIN fee_structures s ON i.structure_id = s.id
		 WHERE s.campus_id = $1 AND s.academic_year = $2 AND s.class_ref = $3`,
		campusID, academicYear, classRef,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch installments: %v", err)
	}
	defer rows.Close()

	type instDue struct {
		id     string
		amount float64
	}
	var installments []instDue
	for rows.Next() {
		var inst instDue
		if err := rows.Scan(&inst.id, &inst.amount); err != nil {
			return 0, err
		}
		installments = append(installments, inst)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	rows.Close()

	upsert := `INSERT INTO student_fee_dues (student_ref, installment_id, discount_amount, balance_amount, is_paid)
			   VALUES ($1, $2, $3, $4, $5)
			   ON CONFLICT (student_ref, installment_id)
			   DO UPDATE SET discount_amount = EXCLUDED.discount_amount,
			                 balance_amount = EXCLUDED.balance_amount,
			                 is_paid = EXCLUDED.is_paid,
			                 updated_at = NOW()`

	for _, inst := range installments {
		balance := inst.amount - discount
		if balance < 0 {
			balance = 0
		}
		if _, err := tx.Exec(upsert, studentRef, inst.id, discount, balance, balance <= 0); err != nil {
			return 0, fmt.Errorf("failed to upsert due for installment %s: %v", inst.id, err)
		}
	}
	return len(installments), nil
}
