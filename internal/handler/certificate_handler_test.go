package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conflu-ai/conflu-api/internal/service"
	"github.com/conflu-ai/conflu-api/pkg/mailer"
	"github.com/conflu-ai/conflu-api/pkg/response"
)

type rendererStub struct{ calls int }

func (r *rendererStub) Render(name string, issuedAt time.Time) ([]byte, error) {
	r.calls++
	return []byte("%PDF-1.4 stub"), nil
}

type certStoreStub struct {
	saved   []string
	deleted []string
}

func (s *certStoreStub) Save(filename string, data []byte) (string, error) {
	s.saved = append(s.saved, filename)
	return "/tmp/" + filename, nil
}

func (s *certStoreStub) Delete(filename string) error {
	s.deleted = append(s.deleted, filename)
	return nil
}

type mailerStub struct {
	sent []mailer.Message
	err  error
}

func (m *mailerStub) Send(ctx context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newCertificateHandler(mail *mailerStub) (*CertificateHandler, *rendererStub, *certStoreStub) {
	renderer := &rendererStub{}
	store := &certStoreStub{}
	svc := service.NewCertificateService(renderer, store, mail, time.Second, nil, nil)
	return NewCertificateHandler(svc), renderer, store
}

func TestCertificateHandlerSend(t *testing.T) {
	mail := &mailerStub{}
	handler, _, store := newCertificateHandler(mail)

	c, w := newStudentTestContext(t, http.MethodPost, "/certificados", map[string]string{
		"name":  "Maria Souza",
		"email": "maria@x.com",
	})
	handler.Send(c)

	require.Equal(t, http.StatusOK, w.Code)
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Certificado enviado com sucesso!", env.Msg)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "CERTIFICADO - Maria Souza", mail.sent[0].Subject)
	assert.Equal(t, store.saved, store.deleted)
}

func TestCertificateHandlerSendMissingFields(t *testing.T) {
	mail := &mailerStub{}
	handler, renderer, _ := newCertificateHandler(mail)

	c, w := newStudentTestContext(t, http.MethodPost, "/certificados", map[string]string{
		"name": "Maria Souza",
	})
	handler.Send(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, renderer.calls)
	assert.Empty(t, mail.sent)
}

func TestCertificateHandlerSendDeliveryFailure(t *testing.T) {
	mail := &mailerStub{err: errors.New("smtp refused")}
	handler, _, store := newCertificateHandler(mail)

	c, w := newStudentTestContext(t, http.MethodPost, "/certificados", map[string]string{
		"name":  "Maria Souza",
		"email": "maria@x.com",
	})
	handler.Send(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, store.saved, store.deleted)
}
