package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conflu-ai/conflu-api/internal/models"
	appErrors "github.com/conflu-ai/conflu-api/pkg/errors"
)

type mockLessonRepo struct {
	lessons map[int64]models.Lesson
	nextID  int64
}

func newMockLessonRepo() *mockLessonRepo {
	return &mockLessonRepo{lessons: make(map[int64]models.Lesson)}
}

func (m *mockLessonRepo) List(ctx context.Context) ([]models.Lesson, error) {
	out := make([]models.Lesson, 0, len(m.lessons))
	for _, l := range m.lessons {
		out = append(out, l)
	}
	return out, nil
}

func (m *mockLessonRepo) FindByID(ctx context.Context, id int64) (*models.Lesson, error) {
	if l, ok := m.lessons[id]; ok {
		return &l, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockLessonRepo) Create(ctx context.Context, lesson *models.Lesson) error {
	m.nextID++
	lesson.ID = m.nextID
	m.lessons[lesson.ID] = *lesson
	return nil
}

func (m *mockLessonRepo) Update(ctx context.Context, lesson *models.Lesson) error {
	m.lessons[lesson.ID] = *lesson
	return nil
}

func (m *mockLessonRepo) Delete(ctx context.Context, id int64) error {
	delete(m.lessons, id)
	return nil
}

func TestLessonServiceCreate(t *testing.T) {
	repo := newMockLessonRepo()
	svc := NewLessonService(repo, nil, nil)

	lesson, err := svc.Create(context.Background(), CreateLessonRequest{
		QRCodePath: "qrcodes/aula-1.png",
		Date:       models.NewDate(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), lesson.ID)
	assert.Equal(t, "qrcodes/aula-1.png", repo.lessons[1].QRCodePath)
}

func TestLessonServiceCreateMissingQRCode(t *testing.T) {
	svc := NewLessonService(newMockLessonRepo(), nil, nil)

	_, err := svc.Create(context.Background(), CreateLessonRequest{
		Date: models.NewDate(time.Now()),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLessonServiceUpdatePartial(t *testing.T) {
	repo := newMockLessonRepo()
	svc := NewLessonService(repo, nil, nil)

	created, err := svc.Create(context.Background(), CreateLessonRequest{
		QRCodePath: "qrcodes/aula-1.png",
		Date:       models.NewDate(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	moved := models.NewDate(time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC))
	updated, err := svc.Update(context.Background(), created.ID, UpdateLessonRequest{Date: &moved})
	require.NoError(t, err)
	assert.Equal(t, "qrcodes/aula-1.png", updated.QRCodePath)
	assert.True(t, updated.Date.Equal(moved.Time))
}

func TestLessonServiceUpdateNotFound(t *testing.T) {
	svc := NewLessonService(newMockLessonRepo(), nil, nil)

	path := "qrcodes/x.png"
	_, err := svc.Update(context.Background(), 99, UpdateLessonRequest{QRCodePath: &path})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestLessonServiceDelete(t *testing.T) {
	repo := newMockLessonRepo()
	svc := NewLessonService(repo, nil, nil)

	created, err := svc.Create(context.Background(), CreateLessonRequest{
		QRCodePath: "qrcodes/aula-1.png",
		Date:       models.NewDate(time.Now()),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.lessons)
}
