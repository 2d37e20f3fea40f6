package services

import (
	"database/sql"
	"fmt"
	"log"
)

// ApplyOverduePenalties adds each overdue unpaid installment's penalty amount
// to the due's outstanding balance. The penalty_applied flag keeps the job
// idempotent: a due is penalized at most once, however often the job runs.
func ApplyOverduePenalties(db *sql.DB) error {
	log.Println("Starting overdue penalty application...")

	result, err := db.Exec(`
		UPDATE student_fee_dues d
		SET balance_amount = d.balance_amount + i.penalty_amount,
		    penalty_applied = true,
		    updated_at = NOW()
		FROM fee_installments i
		WHERE d.installment_id = i.id
		AND d.is_paid = false
		AND d.penalty_applied = false
		AND i.penalty_amount > 0
		AND i.due_date < CURRENT_DATE
	`)
	if err != nil {
		return fmt.Errorf("failed to apply overdue penalties: %v", err)
	}

	count, _ := result.RowsAffected()
	log.Printf("Applied penalties to %d overdue dues", count)
	return nil
}
