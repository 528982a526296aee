package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/conflu-ai/conflu-api/internal/models"
)

// PaymentRepository manages persistence for payment records.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// List returns every payment joined with student and course names.
func (r *PaymentRepository) List(ctx context.Context) ([]models.PaymentDetail, error) {
	const query = `SELECT p.id, p.student_id, p.course_id, p.status, p.method, p.created_at,
        s.name AS student_name, c.name AS course_name
        FROM payments p
        JOIN students s ON s.id = p.student_id
        JOIN courses c ON c.id = p.course_id
        ORDER BY p.id`
	payments := []models.PaymentDetail{}
	if err := r.db.SelectContext(ctx, &payments, query); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// FindByID fetches a payment by ID.
func (r *PaymentRepository) FindByID(ctx context.Context, id int64) (*models.Payment, error) {
	const query = `SELECT id, student_id, course_id, status, method, created_at FROM payments WHERE id = $1`
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, id); err != nil {
		return nil, err
	}
	return &payment, nil
}

// Create inserts a new payment and assigns its generated ID and timestamp.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	const query = `INSERT INTO payments (student_id, course_id, status, method)
        VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	row := r.db.QueryRowxContext(ctx, query, payment.StudentID, payment.CourseID, payment.Status, payment.Method)
	if err := row.Scan(&payment.ID, &payment.CreatedAt); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// Update rewrites an existing payment row. created_at is never touched.
func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	const query = `UPDATE payments SET student_id = :student_id, course_id = :course_id,
        status = :status, method = :method WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, payment); err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

// Delete removes a payment.
func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}
