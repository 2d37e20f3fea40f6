package database

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"meridian-schools/app/identity"
	"meridian-schools/app/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStructure() *models.FeeStructure {
	return &models.FeeStructure{
		ID:           "fs-1",
		TenantID:     testTenant,
		CampusID:     testCampus,
		AcademicYear: testYear,
		ClassRef:     identity.ClassUUID(testCampus, "Grade 5").String(),
		FeeTypeID:    "ft-1",
		TotalAmount:  300,
		Installments: []models.FeeInstallment{
			{Name: "Term 1", DueDate: models.CustomTime{Time: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)}, Amount: 150},
			{Name: "Term 2", DueDate: models.CustomTime{Time: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)}, Amount: 150},
		},
	}
}

func TestCreateFeeStructureInsertsInstallments(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fee_structures")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("fs-1", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fee_installments")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("inst-1"))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fee_installments")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("inst-2"))
	mock.ExpectCommit()

	fs := sampleStructure()
	fs.ID = ""
	err = CreateFeeStructure(db, fs)

	require.NoError(t, err)
	assert.Equal(t, "fs-1", fs.ID)
	assert.Equal(t, "inst-1", fs.Installments[0].ID)
	assert.Equal(t, "fs-1", fs.Installments[0].StructureID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFeeStructureRollsBackOnInstallmentFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fee_structures")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("fs-1", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fee_installments")).
		WillReturnError(errors.New("check constraint violated"))
	mock.ExpectRollback()

	fs := sampleStructure()
	err = CreateFeeStructure(db, fs)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFeeStructureReplacesInstallments(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE fee_structures")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM fee_installments")).
		WithArgs("fs-1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fee_installments")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("inst-1"))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fee_installments")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("inst-2"))
	mock.ExpectCommit()

	err = UpdateFeeStructure(db, sampleStructure())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFeeStructureNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE fee_structures")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = UpdateFeeStructure(db, sampleStructure())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFeeStructureNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM fee_structures")).
		WithArgs("ghost", testTenant, testCampus).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = DeleteFeeStructure(db, testTenant, testCampus, "ghost")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
