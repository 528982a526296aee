package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/conflu-ai/conflu-api/internal/models"
)

// AttendanceRepository manages persistence for attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// List returns every attendance record.
func (r *AttendanceRepository) List(ctx context.Context) ([]models.Attendance, error) {
	const query = `SELECT id, lesson_id, enrollment_id, present, note FROM attendances ORDER BY id`
	attendances := []models.Attendance{}
	if err := r.db.SelectContext(ctx, &attendances, query); err != nil {
		return nil, fmt.Errorf("list attendances: %w", err)
	}
	return attendances, nil
}

// FindByID fetches an attendance record by ID.
func (r *AttendanceRepository) FindByID(ctx context.Context, id int64) (*models.Attendance, error) {
	const query = `SELECT id, lesson_id, enrollment_id, present, note FROM attendances WHERE id = $1`
	var attendance models.Attendance
	if err := r.db.GetContext(ctx, &attendance, query, id); err != nil {
		return nil, err
	}
	return &attendance, nil
}

// Create inserts a new attendance record and assigns its generated ID.
func (r *AttendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	const query = `INSERT INTO attendances (lesson_id, enrollment_id, present, note)
        VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &attendance.ID, query,
		attendance.LessonID, attendance.EnrollmentID, attendance.Present, attendance.Note); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// Update rewrites an existing attendance row.
func (r *AttendanceRepository) Update(ctx context.Context, attendance *models.Attendance) error {
	const query = `UPDATE attendances SET lesson_id = :lesson_id, enrollment_id = :enrollment_id,
        present = :present, note = :note WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, attendance); err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	return nil
}

// Delete removes an attendance record.
func (r *AttendanceRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM attendances WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}
