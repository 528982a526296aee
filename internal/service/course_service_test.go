package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conflu-ai/conflu-api/internal/models"
	appErrors "github.com/conflu-ai/conflu-api/pkg/errors"
)

type mockCourseRepo struct {
	courses    map[int64]models.Course
	dependents map[int64]bool
	listCalls  int
	nextID     int64
}

func (m *mockCourseRepo) List(ctx context.Context) ([]models.Course, error) {
	m.listCalls++
	out := make([]models.Course, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	if c, ok := m.courses[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	if m.courses == nil {
		m.courses = make(map[int64]models.Course)
	}
	m.nextID++
	course.ID = m.nextID
	m.courses[course.ID] = *course
	return nil
}

func (m *mockCourseRepo) Update(ctx context.Context, course *models.Course) error {
	m.courses[course.ID] = *course
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id int64) error {
	delete(m.courses, id)
	return nil
}

func (m *mockCourseRepo) HasDependents(ctx context.Context, id int64) (bool, error) {
	return m.dependents[id], nil
}

type mockCourseCache struct {
	entries map[string][]byte
}

func (m *mockCourseCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCourseCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *mockCourseCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.entries = make(map[string][]byte)
	return nil
}

func TestCourseServiceCreate(t *testing.T) {
	repo := &mockCourseRepo{}
	svc := NewCourseService(repo, nil, 0, validator.New(), zap.NewNop())

	course, err := svc.Create(context.Background(), CreateCourseRequest{
		Name:         "Python 101",
		Price:        100.00,
		DurationDays: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), course.ID)
}

func TestCourseServiceCreateInvalidDuration(t *testing.T) {
	repo := &mockCourseRepo{}
	svc := NewCourseService(repo, nil, 0, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateCourseRequest{Name: "Python 101", Price: 100.00})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCourseServiceListUsesCache(t *testing.T) {
	repo := &mockCourseRepo{courses: map[int64]models.Course{1: {ID: 1, Name: "Python 101"}}}
	cache := &mockCourseCache{}
	svc := NewCourseService(repo, cache, time.Minute, validator.New(), zap.NewNop())

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	second, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls)
}

func TestCourseServiceCreateInvalidatesCache(t *testing.T) {
	repo := &mockCourseRepo{}
	cache := &mockCourseCache{}
	svc := NewCourseService(repo, cache, time.Minute, validator.New(), zap.NewNop())

	_, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, cache.entries)

	_, err = svc.Create(context.Background(), CreateCourseRequest{Name: "Go 101", Price: 50, DurationDays: 5})
	require.NoError(t, err)
	assert.Empty(t, cache.entries)
}

func TestCourseServiceDeleteRestricted(t *testing.T) {
	repo := &mockCourseRepo{
		courses:    map[int64]models.Course{1: {ID: 1, Name: "Python 101"}},
		dependents: map[int64]bool{1: true},
	}
	svc := NewCourseService(repo, nil, 0, validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Len(t, repo.courses, 1)
}

func TestCourseServiceDeleteAfterDependentsRemoved(t *testing.T) {
	repo := &mockCourseRepo{
		courses:    map[int64]models.Course{1: {ID: 1, Name: "Python 101"}},
		dependents: map[int64]bool{},
	}
	svc := NewCourseService(repo, nil, 0, validator.New(), zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, repo.courses)
}
