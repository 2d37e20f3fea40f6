package services

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOverduePenalties(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("penalty_applied = true")).
		WillReturnResult(sqlmock.NewResult(0, 4))

	err = ApplyOverduePenalties(db)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyOverduePenaltiesGuardsAgainstDoubleCharge(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The statement itself must carry the one-shot guard.
	mock.ExpectExec(regexp.QuoteMeta("penalty_applied = false")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, ApplyOverduePenalties(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyOverduePenaltiesError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE student_fee_dues").
		WillReturnError(errors.New("connection reset"))

	err = ApplyOverduePenalties(db)

	assert.Error(t, err)
}
