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

type mockCompanyRepo struct {
	companies map[int64]models.Company
	students  map[int64]bool
	deleted   []int64
	nextID    int64
}

func (m *mockCompanyRepo) List(ctx context.Context) ([]models.Company, error) {
	out := make([]models.Company, 0, len(m.companies))
	for _, c := range m.companies {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCompanyRepo) FindByID(ctx context.Context, id int64) (*models.Company, error) {
	if c, ok := m.companies[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCompanyRepo) Create(ctx context.Context, company *models.Company) error {
	if m.companies == nil {
		m.companies = make(map[int64]models.Company)
	}
	m.nextID++
	company.ID = m.nextID
	m.companies[company.ID] = *company
	return nil
}

func (m *mockCompanyRepo) Update(ctx context.Context, company *models.Company) error {
	m.companies[company.ID] = *company
	return nil
}

func (m *mockCompanyRepo) Delete(ctx context.Context, id int64) error {
	delete(m.companies, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockCompanyRepo) HasStudents(ctx context.Context, id int64) (bool, error) {
	return m.students[id], nil
}

func TestCompanyServiceCreate(t *testing.T) {
	repo := &mockCompanyRepo{}
	svc := NewCompanyService(repo, validator.New(), zap.NewNop())

	company, err := svc.Create(context.Background(), CreateCompanyRequest{Name: "Acme", TaxID: "12345678000100"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), company.ID)
}

func TestCompanyServiceCreateMissingName(t *testing.T) {
	repo := &mockCompanyRepo{}
	svc := NewCompanyService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateCompanyRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.companies)
}

func TestCompanyServiceUpdateNotFound(t *testing.T) {
	repo := &mockCompanyRepo{}
	svc := NewCompanyService(repo, validator.New(), zap.NewNop())

	name := "New"
	_, err := svc.Update(context.Background(), 9, UpdateCompanyRequest{Name: &name})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCompanyServiceDeleteRestricted(t *testing.T) {
	repo := &mockCompanyRepo{
		companies: map[int64]models.Company{1: {ID: 1, Name: "Acme"}},
		students:  map[int64]bool{1: true},
	}
	svc := NewCompanyService(repo, validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Len(t, repo.companies, 1)
}

func TestCompanyServiceDelete(t *testing.T) {
	repo := &mockCompanyRepo{companies: map[int64]models.Company{1: {ID: 1, Name: "Acme"}}}
	svc := NewCompanyService(repo, validator.New(), zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Contains(t, repo.deleted, int64(1))
}
