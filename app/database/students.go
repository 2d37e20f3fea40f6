package database

import (
	"database/sql"
	"fmt"

	"meridian-schools/app/identity"
	"meridian-schools/app/models"
)

// CreateStudent inserts an enrollment record.
func CreateStudent(db *sql.DB, s *models.Student) error {
	query := `INSERT INTO students (tenant_id, campus_id, academic_year, class_name, username, first_name, last_name, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, true)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, s.TenantID, s.CampusID, s.AcademicYear, s.ClassName,
		s.Username, s.FirstName, s.LastName).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// GetStudentByUsername fetches one active student.
func GetStudentByUsername(db *sql.DB, tenantID, username string) (*models.Student, error) {
	s := &models.Student{}
	query := `SELECT id, tenant_id, campus_id, academic_year, class_name, username,
			  first_name, last_name, is_active, created_at, updated_at
			  FROM students
			  WHERE tenant_id = $1 AND username = $2 AND is_active = true`
	err := db.QueryRow(query, tenantID, username).Scan(
		&s.ID, &s.TenantID, &s.CampusID, &s.AcademicYear, &s.ClassName, &s.Username,
		&s.FirstName, &s.LastName, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("student %s not found", username)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetEnrolledStudents lists the currently-enrolled students of a class for an
// academic year.
func GetEnrolledStudents(db *sql.DB, tenantID, campusID, academicYear, className string) ([]models.Student, error) {
	query := `SELECT id, tenant_id, campus_id, academic_year, class_name, username,
			  first_name, last_name, is_active, created_at, updated_at
			  FROM students
			  WHERE tenant_id = $1 AND campus_id = $2 AND academic_year = $3 AND class_name = $4
			  AND is_active = true
			  ORDER BY first_name, last_name`
	rows, err := db.Query(query, tenantID, campusID, academicYear, className)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.TenantID, &s.CampusID, &s.AcademicYear, &s.ClassName,
			&s.Username, &s.FirstName, &s.LastName, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// GetStudentRefIndex rebuilds the student_ref -> display name map for a
// campus by recomputing every enrolled student's deterministic UUID. Same
// brute-force reverse strategy as GetClassRefIndex.
func GetStudentRefIndex(db *sql.DB, tenantID, campusID string) (map[string]string, error) {
	rows, err := db.Query(
		`SELECT username, first_name, last_name FROM students
		 WHERE tenant_id = $1 AND campus_id = $2 AND is_active = true`,
		tenantID, campusID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[string]string)
	for rows.Next() {
		var username, firstName, lastName string
		if err := rows.Scan(&username, &firstName, &lastName); err != nil {
			return nil, err
		}
		index[identity.StudentUUID(username).String()] = firstName + " " + lastName
	}
	return index, rows.Err()
}
