package database

import (
	"database/sql"
	"fmt"
	"strconv"

	"meridian-schools/app/identity"
	"meridian-schools/app/models"
)

// StudentDueFilters narrows the ledger query. Student accepts either a
// deterministic UUID or a raw username; ClassID accepts the collaborator
// table's integer id as a string.
type StudentDueFilters struct {
	Student      string
	ClassID      string
	AcademicYear string
}

// GetStudentFeeDues returns the ledger: every due joined with its
// installment, structure and fee type, enriched with resolved display names.
// An empty result is not an error.
func GetStudentFeeDues(db *sql.DB, tenantID, campusID string, filters StudentDueFilters) ([]models.StudentFeeDue, error) {
	baseQuery := `SELECT d.id, d.student_ref, d.installment_id, d.discount_amount, d.balance_amount,
				  d.is_paid, d.penalty_applied, d.created_at, d.updated_at,
				  i.name, i.due_date, i.amount,
				  s.academic_year, s.class_ref, ft.name
				  FROM student_fee_dues d
				  JOIN fee_installments i ON d.installment_id = i.id
				  JOIN fee_structures s ON i.structure_id = s.id
				  JOIN fee_types ft ON s.fee_type_id = ft.id
				  WHERE s.tenant_id = $1 AND s.campus_id = $2`

	args := []interface{}{tenantID, campusID}
	argIndex := 3

	if filters.Student != "" {
		studentRef := filters.Student
		if !identity.IsUUID(studentRef) {
			studentRef = identity.StudentUUID(filters.Student).String()
		}
		baseQuery += fmt.Sprintf(" AND d.student_ref = $%d", argIndex)
		args = append(args, studentRef)
		argIndex++
	}

	if filters.ClassID != "" {
		classID, err := strconv.Atoi(filters.ClassID)
		if err != nil {
			return nil, fmt.Errorf("invalid class id %q", filters.ClassID)
		}
		className, err := GetClassNameByID(db, tenantID, campusID, classID)
		if err != nil {
			return nil, err
		}
		baseQuery += fmt.Sprintf(" AND s.class_ref = $%d", argIndex)
		args = append(args, identity.ClassUUID(campusID, className).String())
		argIndex++
	}

	if filters.AcademicYear != "" {
		baseQuery += fmt.Sprintf(" AND s.academic_year = $%d", argIndex)
		args = append(args, filters.AcademicYear)
		argIndex++
	}

	baseQuery += " ORDER BY i.due_date ASC, i.name ASC"

	rows, err := db.Query(baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dues := make([]models.StudentFeeDue, 0)
	for rows.Next() {
		var d models.StudentFeeDue
		var classRef string
		if err := rows.Scan(&d.ID, &d.StudentRef, &d.InstallmentID, &d.DiscountAmount, &d.BalanceAmount,
			&d.IsPaid, &d.PenaltyApplied, &d.CreatedAt, &d.UpdatedAt,
			&d.InstallmentName, &d.InstallmentDue, &d.InstallmentAmt,
			&d.AcademicYear, &classRef, &d.FeeTypeName); err != nil {
			return nil, err
		}
		d.ClassName = classRef
		dues = append(dues, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	studentIndex, err := GetStudentRefIndex(db, tenantID, campusID)
	if err != nil {
		return nil, err
	}
	classIndex, err := GetClassRefIndex(db, tenantID, campusID)
	if err != nil {
		return nil, err
	}
	for i := range dues {
		dues[i].StudentName = studentIndex[dues[i].StudentRef]
		dues[i].ClassName = classIndex[dues[i].ClassName]
	}
	return dues, nil
}

// GetAllPayments returns the campus's payment history, newest first, with
// allocations attached and student names resolved.
func GetAllPayments(db *sql.DB, tenantID, campusID, studentFilter string) ([]models.FeePayment, error) {
	baseQuery := `SELECT id, tenant_id, student_ref, amount_paid, payment_method,
				  collected_by, remarks, payment_date
				  FROM fee_payments
				  WHERE tenant_id = $1`
	args := []interface{}{tenantID}

	if studentFilter != "" {
		studentRef := studentFilter
		if !identity.IsUUID(studentRef) {
			studentRef = identity.StudentUUID(studentFilter).String()
		}
		baseQuery += " AND student_ref = $2"
		args = append(args, studentRef)
	}
	baseQuery += " ORDER BY payment_date DESC"

	rows, err := db.Query(baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]models.FeePayment, 0)
	for rows.Next() {
		var p models.FeePayment
		var method string
		if err := rows.Scan(&p.ID, &p.TenantID, &p.StudentRef, &p.AmountPaid, &method,
			&p.CollectedBy, &p.Remarks, &p.PaymentDate); err != nil {
			return nil, err
		}
		p.PaymentMethod = models.PaymentMethod(method)
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	studentIndex, err := GetStudentRefIndex(db, tenantID, campusID)
	if err != nil {
		return nil, err
	}
	for i := range payments {
		payments[i].StudentName = studentIndex[payments[i].StudentRef]
		payments[i].Allocations, err = getAllocations(db, payments[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return payments, nil
}

func getAllocations(db *sql.DB, paymentID string) ([]*models.PaymentAllocation, error) {
	rows, err := db.Query(
		`SELECT id, payment_id, due_id, amount_allocated, created_at
		 FROM payment_allocations WHERE payment_id = $1 ORDER BY created_at ASC`,
		paymentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	allocations := make([]*models.PaymentAllocation, 0)
	for rows.Next() {
		a := &models.PaymentAllocation{}
		if err := rows.Scan(&a.ID, &a.PaymentID, &a.DueID, &a.AmountAllocated, &a.CreatedAt); err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// FeeStats aggregates the campus's due and collection state.
type FeeStats struct {
	TotalDues        int     `json:"total_dues"`
	PaidDues         int     `json:"paid_dues"`
	UnpaidDues       int     `json:"unpaid_dues"`
	TotalOutstanding float64 `json:"total_outstanding"`
	TotalCollected   float64 `json:"total_collected"`
}

// GetFeeStats returns campus-wide aggregates for the dashboard.
func GetFeeStats(db *sql.DB, tenantID, campusID string) (*FeeStats, error) {
	stats := &FeeStats{}
	err := db.QueryRow(
		`SELECT COUNT(*),
		        COUNT(CASE WHEN d.is_paid THEN 1 END),
		        COUNT(CASE WHEN NOT d.is_paid THEN 1 END),
		        COALESCE(SUM(d.balance_amount), 0)
		 FROM student_fee_dues d
		 JOIN fee_installments i ON d.installment_id = i.id
		 JOIN fee_structures s ON i.structure_id = s.id
		 WHERE s.tenant_id = $1 AND s.campus_id = $2`,
		tenantID, campusID,
	).Scan(&stats.TotalDues, &stats.PaidDues, &stats.UnpaidDues, &stats.TotalOutstanding)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(
		`SELECT COALESCE(SUM(a.amount_allocated), 0)
		 FROM payment_allocations a
		 JOIN student_fee_dues d ON a.due_id = d.id
		 JOIN fee_installments i ON d.installment_id = i.id
		 JOIN fee_structures s ON i.structure_id = s.id
		 WHERE s.tenant_id = $1 AND s.campus_id = $2`,
		tenantID, campusID,
	).Scan(&stats.TotalCollected)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
