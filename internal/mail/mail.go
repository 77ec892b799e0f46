// Package mail defines the outbound message and the transport collaborator
// that delivers it.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"
)

// Message is one composed mail with a single attachment.
type Message struct {
	From           string
	To             string
	CC             string
	Subject        string
	Body           string
	AttachmentPath string
}

// Transport delivers a composed message. Tests substitute a fake.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// SMTP delivers through a mail server, upgrading to TLS when the server
// offers it. Credentials are optional; campus relays often accept
// unauthenticated submission from the local network.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
}

func (s *SMTP) Send(ctx context.Context, m Message) error {
	opts := []gomail.Option{
		gomail.WithPort(s.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if s.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.Username),
			gomail.WithPassword(s.Password),
		)
	}
	client, err := gomail.NewClient(s.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return fmt.Errorf("from address %q: %w", m.From, err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("to address %q: %w", m.To, err)
	}
	if m.CC != "" {
		if err := msg.Cc(m.CC); err != nil {
			return fmt.Errorf("cc address %q: %w", m.CC, err)
		}
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, m.Body)
	msg.AttachFile(m.AttachmentPath)

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send to %s: %w", m.To, err)
	}
	return nil
}

// DryRun logs what would be sent without touching the network.
type DryRun struct{}

func (DryRun) Send(_ context.Context, m Message) error {
	slog.Info("dry run, not sending",
		"to", m.To, "cc", m.CC, "subject", m.Subject, "attachment", m.AttachmentPath)
	return nil
}
