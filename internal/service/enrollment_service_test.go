package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conflu-ai/conflu-api/internal/models"
	appErrors "github.com/conflu-ai/conflu-api/pkg/errors"
)

type mockEnrollmentRepo struct {
	enrollments map[int64]models.Enrollment
	deleted     []int64
	nextID      int64
}

func (m *mockEnrollmentRepo) List(ctx context.Context) ([]models.Enrollment, error) {
	out := make([]models.Enrollment, 0, len(m.enrollments))
	for _, e := range m.enrollments {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEnrollmentRepo) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	if e, ok := m.enrollments[id]; ok {
		return &e, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if m.enrollments == nil {
		m.enrollments = make(map[int64]models.Enrollment)
	}
	m.nextID++
	enrollment.ID = m.nextID
	m.enrollments[enrollment.ID] = *enrollment
	return nil
}

func (m *mockEnrollmentRepo) Update(ctx context.Context, enrollment *models.Enrollment) error {
	m.enrollments[enrollment.ID] = *enrollment
	return nil
}

func (m *mockEnrollmentRepo) Delete(ctx context.Context, id int64) error {
	delete(m.enrollments, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockTurmaFinder struct {
	turmas map[int64]models.TurmaDetail
}

func (m *mockTurmaFinder) FindByID(ctx context.Context, id int64) (*models.TurmaDetail, error) {
	if t, ok := m.turmas[id]; ok {
		return &t, nil
	}
	return nil, sql.ErrNoRows
}

func TestEnrollmentServiceCreate(t *testing.T) {
	repo := &mockEnrollmentRepo{}
	students := &mockStudentFinder{students: map[int64]models.Student{1: {ID: 1, Name: "Ana"}}}
	turmas := &mockTurmaFinder{turmas: map[int64]models.TurmaDetail{2: {Turma: models.Turma{ID: 2}}}}
	svc := NewEnrollmentService(repo, students, turmas, validator.New(), zap.NewNop())

	enrollment, err := svc.Create(context.Background(), CreateEnrollmentRequest{
		StudentID:  1,
		TurmaID:    2,
		Source:     "site",
		EnrolledAt: models.NewDate(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	assert.NotZero(t, enrollment.ID)
}

func TestEnrollmentServiceCreateUnknownTurma(t *testing.T) {
	repo := &mockEnrollmentRepo{}
	students := &mockStudentFinder{students: map[int64]models.Student{1: {ID: 1}}}
	svc := NewEnrollmentService(repo, students, &mockTurmaFinder{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateEnrollmentRequest{
		StudentID:  1,
		TurmaID:    9,
		Source:     "site",
		EnrolledAt: models.NewDate(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.enrollments)
}

func TestEnrollmentServiceUpdateNotFound(t *testing.T) {
	svc := NewEnrollmentService(&mockEnrollmentRepo{}, &mockStudentFinder{}, &mockTurmaFinder{}, validator.New(), zap.NewNop())

	source := "indicacao"
	_, err := svc.Update(context.Background(), 7, UpdateEnrollmentRequest{Source: &source})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceDelete(t *testing.T) {
	repo := &mockEnrollmentRepo{enrollments: map[int64]models.Enrollment{1: {ID: 1}}}
	svc := NewEnrollmentService(repo, &mockStudentFinder{}, &mockTurmaFinder{}, validator.New(), zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Contains(t, repo.deleted, int64(1))
}
