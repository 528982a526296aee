package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/conflu-ai/conflu-api/internal/models"
)

// TurmaRepository manages persistence for class offerings.
type TurmaRepository struct {
	db *sqlx.DB
}

// NewTurmaRepository constructs a TurmaRepository.
func NewTurmaRepository(db *sqlx.DB) *TurmaRepository {
	return &TurmaRepository{db: db}
}

// List returns every turma joined with its course name and lesson count.
func (r *TurmaRepository) List(ctx context.Context) ([]models.TurmaDetail, error) {
	const query = `SELECT t.id, t.course_id, t.location, t.start_date, t.end_date, t.created_at,
        c.name AS course_name, c.duration_days AS lesson_count
        FROM turmas t JOIN courses c ON c.id = t.course_id ORDER BY t.id`
	turmas := []models.TurmaDetail{}
	if err := r.db.SelectContext(ctx, &turmas, query); err != nil {
		return nil, fmt.Errorf("list turmas: %w", err)
	}
	return turmas, nil
}

// FindByID fetches a turma detail by ID.
func (r *TurmaRepository) FindByID(ctx context.Context, id int64) (*models.TurmaDetail, error) {
	const query = `SELECT t.id, t.course_id, t.location, t.start_date, t.end_date, t.created_at,
        c.name AS course_name, c.duration_days AS lesson_count
        FROM turmas t JOIN courses c ON c.id = t.course_id WHERE t.id = $1`
	var detail models.TurmaDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts a new turma and assigns its generated ID and timestamp.
func (r *TurmaRepository) Create(ctx context.Context, turma *models.Turma) error {
	const query = `INSERT INTO turmas (course_id, location, start_date, end_date)
        VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	row := r.db.QueryRowxContext(ctx, query, turma.CourseID, turma.Location, turma.StartDate, turma.EndDate)
	if err := row.Scan(&turma.ID, &turma.CreatedAt); err != nil {
		return fmt.Errorf("create turma: %w", err)
	}
	return nil
}

// Update rewrites an existing turma row. created_at is never touched.
func (r *TurmaRepository) Update(ctx context.Context, turma *models.Turma) error {
	const query = `UPDATE turmas SET course_id = :course_id, location = :location,
        start_date = :start_date, end_date = :end_date WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, turma); err != nil {
		return fmt.Errorf("update turma: %w", err)
	}
	return nil
}

// Delete removes a turma. Enrollments cascade, and their attendance rows
// cascade in turn.
func (r *TurmaRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM turmas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete turma: %w", err)
	}
	return nil
}
