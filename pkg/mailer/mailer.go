package mailer

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/conflu-ai/conflu-api/pkg/config"
)

// Message describes an outgoing email with an optional PDF attachment.
type Message struct {
	To             string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
}

// Mailer delivers messages over an authenticated TLS submission connection.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends mail through the operator's SMTP account.
type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
}

// NewSMTP builds a mailer from SMTP configuration. Port 465 uses implicit TLS.
func NewSMTP(cfg config.SMTPConfig) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Sender, cfg.Password)
	dialer.SSL = cfg.Port == 465
	return &SMTPMailer{dialer: dialer, sender: cfg.Sender}
}

// Send delivers the message synchronously. The dial-and-send round trip runs
// in its own goroutine so the context deadline bounds a stalled mail server.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.sender)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)
	if len(msg.Attachment) > 0 {
		gm.Attach(msg.AttachmentName,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(msg.Attachment))
				return err
			}),
		)
	}

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(gm)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send: %w", ctx.Err())
	}
}
