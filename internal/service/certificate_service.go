package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/conflu-ai/conflu-api/pkg/errors"
	"github.com/conflu-ai/conflu-api/pkg/mailer"
)

type certificateRenderer interface {
	Render(name string, issuedAt time.Time) ([]byte, error)
}

type certificateStore interface {
	Save(filename string, data []byte) (string, error)
	Delete(filename string) error
}

// SendCertificateRequest carries the recipient of a completion certificate.
type SendCertificateRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// CertificateService renders completion certificates and emails them to
// students. Delivery is synchronous and at-most-once; there is no retry.
type CertificateService struct {
	renderer    certificateRenderer
	store       certificateStore
	mail        mailer.Mailer
	validator   *validator.Validate
	logger      *zap.Logger
	sendTimeout time.Duration
}

// NewCertificateService constructs the certificate service.
func NewCertificateService(renderer certificateRenderer, store certificateStore, mail mailer.Mailer, sendTimeout time.Duration, validate *validator.Validate, logger *zap.Logger) *CertificateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if sendTimeout <= 0 {
		sendTimeout = 30 * time.Second
	}
	return &CertificateService{
		renderer:    renderer,
		store:       store,
		mail:        mail,
		validator:   validate,
		logger:      logger,
		sendTimeout: sendTimeout,
	}
}

// Send renders the certificate, stores it under a collision-free name, emails
// it as an attachment and removes the file whether or not delivery succeeds.
func (s *CertificateService) Send(ctx context.Context, req SendCertificateRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "name and email are required")
	}

	issuedAt := time.Now()
	pdf, err := s.renderer.Render(req.Name, issuedAt)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render certificate")
	}

	filename := fmt.Sprintf("certificado_%s.pdf", uuid.NewString())
	if _, err := s.store.Save(filename, pdf); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store certificate")
	}
	defer func() {
		if err := s.store.Delete(filename); err != nil {
			s.logger.Warn("failed to remove certificate file", zap.String("file", filename), zap.Error(err))
		}
	}()

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	msg := mailer.Message{
		To:             req.Email,
		Subject:        fmt.Sprintf("CERTIFICADO - %s", req.Name),
		Body:           fmt.Sprintf("Olá, %s! Segue em anexo o certificado referente ao curso concluído.\n\nAtenciosamente, Equipe Conflu AI", req.Name),
		AttachmentName: fmt.Sprintf("certificado_%s.pdf", req.Name),
		Attachment:     pdf,
	}
	if err := s.mail.Send(sendCtx, msg); err != nil {
		s.logger.Error("certificate delivery failed", zap.String("email", req.Email), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrDelivery.Code, appErrors.ErrDelivery.Status, "failed to deliver certificate")
	}

	s.logger.Info("certificate delivered", zap.String("email", req.Email))
	return nil
}
