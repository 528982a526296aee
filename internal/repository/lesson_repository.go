package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/conflu-ai/conflu-api/internal/models"
)

// LessonRepository manages persistence for lesson sessions.
type LessonRepository struct {
	db *sqlx.DB
}

// NewLessonRepository constructs a LessonRepository.
func NewLessonRepository(db *sqlx.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

// List returns every lesson session.
func (r *LessonRepository) List(ctx context.Context) ([]models.Lesson, error) {
	const query = `SELECT id, qr_code_path, lesson_date FROM lessons ORDER BY id`
	lessons := []models.Lesson{}
	if err := r.db.SelectContext(ctx, &lessons, query); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}

// FindByID fetches a lesson by ID.
func (r *LessonRepository) FindByID(ctx context.Context, id int64) (*models.Lesson, error) {
	const query = `SELECT id, qr_code_path, lesson_date FROM lessons WHERE id = $1`
	var lesson models.Lesson
	if err := r.db.GetContext(ctx, &lesson, query, id); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// Create inserts a new lesson and assigns its generated ID.
func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	const query = `INSERT INTO lessons (qr_code_path, lesson_date) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &lesson.ID, query, lesson.QRCodePath, lesson.Date); err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}
	return nil
}

// Update rewrites an existing lesson row.
func (r *LessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	const query = `UPDATE lessons SET qr_code_path = :qr_code_path, lesson_date = :lesson_date WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, lesson); err != nil {
		return fmt.Errorf("update lesson: %w", err)
	}
	return nil
}

// Delete removes a lesson. Attendance rows cascade.
func (r *LessonRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	return nil
}
