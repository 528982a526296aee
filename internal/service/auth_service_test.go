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
	"golang.org/x/crypto/bcrypt"

	"github.com/conflu-ai/conflu-api/internal/models"
	appErrors "github.com/conflu-ai/conflu-api/pkg/errors"
)

type mockUserRepo struct {
	users  map[string]models.User
	nextID int64
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.users[email]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := m.users[email]
	return ok, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.users == nil {
		m.users = make(map[string]models.User)
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.Email] = *user
	return nil
}

func newTestAuthService(repo *mockUserRepo) *AuthService {
	return NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		Secret:     "test_secret",
		Expiration: time.Hour,
		Issuer:     "conflu-api",
	})
}

func TestAuthServiceRegisterHashesPassword(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), models.RegisterRequest{
		FirstName: "Ana",
		Email:     "ana@x.com",
		Password:  "supersecret",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	stored := repo.users["ana@x.com"]
	assert.NotEqual(t, "supersecret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecret")))
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{users: map[string]models.User{"ana@x.com": {ID: 1, Email: "ana@x.com"}}}
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		FirstName: "Ana",
		Email:     "ana@x.com",
		Password:  "supersecret",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRegisterShortPassword(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{})

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		FirstName: "Ana",
		Email:     "ana@x.com",
		Password:  "short",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := &mockUserRepo{users: map[string]models.User{
		"ana@x.com": {ID: 1, FirstName: "Ana", Email: "ana@x.com", PasswordHash: string(hash)},
	}}
	svc := newTestAuthService(repo)

	result, err := svc.Login(context.Background(), models.LoginRequest{Email: "ana@x.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", result.Name)
	assert.NotEmpty(t, result.AccessToken)

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "ana@x.com", claims.Email)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := &mockUserRepo{users: map[string]models.User{
		"ana@x.com": {ID: 1, Email: "ana@x.com", PasswordHash: string(hash)},
	}}
	svc := newTestAuthService(repo)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "ana@x.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@x.com", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{})

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
