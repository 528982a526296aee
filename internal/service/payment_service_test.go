package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conflu-ai/conflu-api/internal/models"
	appErrors "github.com/conflu-ai/conflu-api/pkg/errors"
)

type mockPaymentRepo struct {
	payments map[int64]models.Payment
	nextID   int64
}

func (m *mockPaymentRepo) List(ctx context.Context) ([]models.PaymentDetail, error) {
	out := make([]models.PaymentDetail, 0, len(m.payments))
	for _, p := range m.payments {
		out = append(out, models.PaymentDetail{Payment: p})
	}
	return out, nil
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id int64) (*models.Payment, error) {
	if p, ok := m.payments[id]; ok {
		return &p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	if m.payments == nil {
		m.payments = make(map[int64]models.Payment)
	}
	m.nextID++
	payment.ID = m.nextID
	m.payments[payment.ID] = *payment
	return nil
}

func (m *mockPaymentRepo) Update(ctx context.Context, payment *models.Payment) error {
	m.payments[payment.ID] = *payment
	return nil
}

func (m *mockPaymentRepo) Delete(ctx context.Context, id int64) error {
	delete(m.payments, id)
	return nil
}

type mockStudentFinder struct {
	students map[int64]models.Student
}

func (m *mockStudentFinder) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func TestPaymentServiceCreateDefaultsMethod(t *testing.T) {
	repo := &mockPaymentRepo{}
	students := &mockStudentFinder{students: map[int64]models.Student{1: {ID: 1, Name: "Ana"}}}
	courses := &mockCourseFinder{courses: map[int64]models.Course{2: {ID: 2, Name: "Python 101"}}}
	svc := NewPaymentService(repo, students, courses, validator.New(), zap.NewNop())

	payment, err := svc.Create(context.Background(), CreatePaymentRequest{
		StudentID: 1,
		CourseID:  2,
		Status:    "pago",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPaymentMethod, payment.Method)
}

func TestPaymentServiceCreateUnknownStudent(t *testing.T) {
	repo := &mockPaymentRepo{}
	courses := &mockCourseFinder{courses: map[int64]models.Course{2: {ID: 2}}}
	svc := NewPaymentService(repo, &mockStudentFinder{}, courses, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreatePaymentRequest{StudentID: 9, CourseID: 2, Status: "pago"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.payments)
}

func TestPaymentServiceUpdateNotFound(t *testing.T) {
	svc := NewPaymentService(&mockPaymentRepo{}, &mockStudentFinder{}, &mockCourseFinder{}, validator.New(), zap.NewNop())

	status := "estornado"
	_, err := svc.Update(context.Background(), 3, UpdatePaymentRequest{Status: &status})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPaymentServiceUpdatePartial(t *testing.T) {
	repo := &mockPaymentRepo{payments: map[int64]models.Payment{1: {ID: 1, StudentID: 1, CourseID: 2, Status: "pendente", Method: "Pix"}}}
	svc := NewPaymentService(repo, &mockStudentFinder{}, &mockCourseFinder{}, validator.New(), zap.NewNop())

	status := "pago"
	payment, err := svc.Update(context.Background(), 1, UpdatePaymentRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "pago", payment.Status)
	assert.Equal(t, "Pix", payment.Method)
}
