// Package mailer delivers transactional email. An SMTP implementation backs
// production; a logging noop stands in when SMTP is unconfigured so local
// development does not require a mail server.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"
)

// SMTP sends verification links through an SMTP relay.
type SMTP struct {
	client  *gomail.Client
	from    string
	baseURL string
}

// NewSMTP creates an SMTP mailer. baseURL is the public origin used to build
// verification links.
func NewSMTP(host, port, username, password, from, baseURL string) (*SMTP, error) {
	p, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port %q: %w", port, err)
	}

	opts := []gomail.Option{
		gomail.WithPort(p),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}

	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTP{client: client, from: from, baseURL: baseURL}, nil
}

// SendVerification mails the single-use verification link.
func (m *SMTP) SendVerification(ctx context.Context, to, name string, verificationID uuid.UUID) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	link := fmt.Sprintf("%s/verify/%s", m.baseURL, verificationID)
	msg.Subject("Verify your email")
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Hi %s,\n\nConfirm your email address by opening the link below. The link expires in 24 hours.\n\n%s\n",
		name, link,
	))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send verification mail to %s: %w", to, err)
	}
	return nil
}

// Noop logs verification links instead of sending them.
type Noop struct{}

func (Noop) SendVerification(_ context.Context, to, _ string, verificationID uuid.UUID) error {
	slog.Info("Mailer not configured, skipping verification mail",
		"to", to, "verification_id", verificationID.String())
	return nil
}
