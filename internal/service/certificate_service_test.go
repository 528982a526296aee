package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/conflu-ai/conflu-api/pkg/errors"
	"github.com/conflu-ai/conflu-api/pkg/mailer"
)

type mockRenderer struct {
	calls int
	err   error
}

func (m *mockRenderer) Render(name string, issuedAt time.Time) ([]byte, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

type mockCertStore struct {
	saved   []string
	deleted []string
}

func (m *mockCertStore) Save(filename string, data []byte) (string, error) {
	m.saved = append(m.saved, filename)
	return "/tmp/" + filename, nil
}

func (m *mockCertStore) Delete(filename string) error {
	m.deleted = append(m.deleted, filename)
	return nil
}

type mockMailer struct {
	sent []mailer.Message
	err  error
}

func (m *mockMailer) Send(ctx context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestCertificateServiceSend(t *testing.T) {
	renderer := &mockRenderer{}
	store := &mockCertStore{}
	mail := &mockMailer{}
	svc := NewCertificateService(renderer, store, mail, time.Second, validator.New(), zap.NewNop())

	err := svc.Send(context.Background(), SendCertificateRequest{Name: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "CERTIFICADO - Ana", mail.sent[0].Subject)
	assert.Equal(t, "ana@x.com", mail.sent[0].To)
	assert.NotEmpty(t, mail.sent[0].Attachment)
	assert.Len(t, store.saved, 1)
	assert.Equal(t, store.saved, store.deleted)
}

func TestCertificateServiceSendMissingEmail(t *testing.T) {
	renderer := &mockRenderer{}
	store := &mockCertStore{}
	mail := &mockMailer{}
	svc := NewCertificateService(renderer, store, mail, time.Second, validator.New(), zap.NewNop())

	err := svc.Send(context.Background(), SendCertificateRequest{Name: "Ana"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, renderer.calls)
	assert.Empty(t, store.saved)
	assert.Empty(t, mail.sent)
}

func TestCertificateServiceSendDeliveryFailure(t *testing.T) {
	store := &mockCertStore{}
	mail := &mockMailer{err: errors.New("connection refused")}
	svc := NewCertificateService(&mockRenderer{}, store, mail, time.Second, validator.New(), zap.NewNop())

	err := svc.Send(context.Background(), SendCertificateRequest{Name: "Ana", Email: "ana@x.com"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDelivery.Code, appErr.Code)
	assert.Equal(t, appErrors.ErrDelivery.Status, appErr.Status)
	assert.Equal(t, store.saved, store.deleted)
}

func TestCertificateServiceSendUniqueFilenames(t *testing.T) {
	store := &mockCertStore{}
	svc := NewCertificateService(&mockRenderer{}, store, &mockMailer{}, time.Second, validator.New(), zap.NewNop())

	require.NoError(t, svc.Send(context.Background(), SendCertificateRequest{Name: "Ana", Email: "ana@x.com"}))
	require.NoError(t, svc.Send(context.Background(), SendCertificateRequest{Name: "Ana", Email: "ana@x.com"}))
	require.Len(t, store.saved, 2)
	assert.NotEqual(t, store.saved[0], store.saved[1])
}
