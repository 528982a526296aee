package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conflu-ai/conflu-api/internal/models"
	"github.com/conflu-ai/conflu-api/internal/service"
	"github.com/conflu-ai/conflu-api/pkg/response"
)

type studentRepoStub struct {
	students map[int64]models.Student
	nextID   int64
}

func (m *studentRepoStub) List(ctx context.Context) ([]models.Student, error) {
	out := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	return out, nil
}

func (m *studentRepoStub) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *studentRepoStub) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	for id, s := range m.students {
		if s.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *studentRepoStub) Create(ctx context.Context, student *models.Student) error {
	if m.students == nil {
		m.students = make(map[int64]models.Student)
	}
	m.nextID++
	student.ID = m.nextID
	m.students[student.ID] = *student
	return nil
}

func (m *studentRepoStub) Update(ctx context.Context, student *models.Student) error {
	m.students[student.ID] = *student
	return nil
}

func (m *studentRepoStub) Delete(ctx context.Context, id int64) error {
	delete(m.students, id)
	return nil
}

func (m *studentRepoStub) HasDependents(ctx context.Context, id int64) (bool, error) {
	return false, nil
}

type companyFinderStub struct{}

func (companyFinderStub) FindByID(ctx context.Context, id int64) (*models.Company, error) {
	return nil, sql.ErrNoRows
}

func newStudentTestContext(t *testing.T, method, path string, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, path, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestStudentHandlerCreate(t *testing.T) {
	repo := &studentRepoStub{}
	handler := NewStudentHandler(service.NewStudentService(repo, companyFinderStub{}, nil, nil))

	c, w := newStudentTestContext(t, http.MethodPost, "/alunos", map[string]string{
		"name":  "Ana",
		"email": "ana@x.com",
	})
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Aluno criado com sucesso!", env.Msg)
	assert.Len(t, repo.students, 1)
}

func TestStudentHandlerCreateInvalidBody(t *testing.T) {
	handler := NewStudentHandler(service.NewStudentService(&studentRepoStub{}, companyFinderStub{}, nil, nil))

	c, w := newStudentTestContext(t, http.MethodPost, "/alunos", nil)
	c.Request.Body = http.NoBody
	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudentHandlerGetNotFound(t *testing.T) {
	handler := NewStudentHandler(service.NewStudentService(&studentRepoStub{}, companyFinderStub{}, nil, nil))

	c, w := newStudentTestContext(t, http.MethodGet, "/alunos/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentHandlerGetInvalidID(t *testing.T) {
	handler := NewStudentHandler(service.NewStudentService(&studentRepoStub{}, companyFinderStub{}, nil, nil))

	c, w := newStudentTestContext(t, http.MethodGet, "/alunos/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	handler.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
