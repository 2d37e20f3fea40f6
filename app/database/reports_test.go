package database

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFeeStatsScopedToCampus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM student_fee_dues d")).
		WithArgs(testTenant, testCampus).
		WillReturnRows(sqlmock.NewRows([]string{"count", "paid", "unpaid", "outstanding"}).
			AddRow(10, 4, 6, 1200.0))

	// Collected total walks allocations back through dues to structures, so
	// another campus's collections under the same tenant never leak in.
	mock.ExpectQuery(regexp.QuoteMeta("FROM payment_allocations a")).
		WithArgs(testTenant, testCampus).
		WillReturnRows(sqlmock.NewRows([]string{"collected"}).AddRow(800.0))

	stats, err := GetFeeStats(db, testTenant, testCampus)

	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalDues)
	assert.Equal(t, 4, stats.PaidDues)
	assert.Equal(t, 6, stats.UnpaidDues)
	assert.Equal(t, 1200.0, stats.TotalOutstanding)
	assert.Equal(t, 800.0, stats.TotalCollected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
