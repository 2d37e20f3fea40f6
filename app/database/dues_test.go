package database

import (
	"regexp"
	"testing"
	"time"

	"meridian-schools/app/identity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCampus = "f47ac10b-58cc-4372-a567-0e02b2c3d479"
	testYear   = "2024-2025"
)

func expectInstallmentFetch(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery(regexp.QuoteMeta("FROM fee_installments i")).WillReturnRows(rows)
}

func TestAssignFeesForEnrollmentUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	studentRef := identity.StudentUUID("jdoe2024").String()

	mock.ExpectBegin()
	expectInstallmentFetch(mock, sqlmock.NewRows([]string{"id", "amount"}).
		AddRow("inst-1", 100.0).
		AddRow("inst-2", 50.0))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (student_ref, installment_id)")).
		WithArgs(studentRef, "inst-1", 0.0, 100.0, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (student_ref, installment_id)")).
		WithArgs(studentRef, "inst-2", 0.0, 50.0, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	applied, err := AssignFeesForEnrollment(db, testTenant, testCampus, testYear, "Grade 5", "jdoe2024", 0)

	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignFeesDiscountClampsBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	studentRef := identity.StudentUUID("jdoe2024").String()

	// Discount larger than the installment: balance clamps to 0, due is born paid.
	mock.ExpectBegin()
	expectInstallmentFetch(mock, sqlmock.NewRows([]string{"id", "amount"}).
		AddRow("inst-1", 100.0))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (student_ref, installment_id)")).
		WithArgs(studentRef, "inst-1", 120.0, 0.0, true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	applied, err := AssignFeesForEnrollment(db, testTenant, testCampus, testYear, "Grade 5", "jdoe2024", 120)

	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateDuesForClass(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM classes")).
		WithArgs(5, testTenant, testCampus).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Grade 5"))

	now := time.Now()
	studentCols := []string{"id", "tenant_id", "campus_id", "academic_year", "class_name",
		"username", "first_name", "last_name", "is_active", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM students")).
		WillReturnRows(sqlmock.NewRows(studentCols).
			AddRow("s1", testTenant, testCampus, testYear, "Grade 5", "amina2024", "Amina", "K", true, now, now).
			AddRow("s2", testTenant, testCampus, testYear, "Grade 5", "brian2024", "Brian", "O", true, now, now))

	mock.ExpectBegin()
	// First student matches one installment, the second matches none.
	expectInstallmentFetch(mock, sqlmock.NewRows([]string{"id", "amount"}).AddRow("inst-1", 75.0))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (student_ref, installment_id)")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectInstallmentFetch(mock, sqlmock.NewRows([]string{"id", "amount"}))
	mock.ExpectCommit()

	summary, err := GenerateDuesForClass(db, testTenant, testCampus, testYear, 5)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalStudents)
	assert.Equal(t, 1, summary.TotalAssigned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateDuesUnknownClass(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM classes")).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	_, err = GenerateDuesForClass(db, testTenant, testCampus, testYear, 99)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
