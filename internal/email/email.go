// Package email sends outbound mail through the Gmail API.
package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender sends email on behalf of the configured account.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// GmailSender sends through the Gmail API as the authenticated user.
type GmailSender struct {
	service *gmail.Service
	from    string
	logger  *slog.Logger
}

// NewGmailSender creates a sender using the given credentials file.
func NewGmailSender(ctx context.Context, credentialsFile, from string, logger *slog.Logger) (*GmailSender, error) {
	svc, err := gmail.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gmail.GmailSendScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	return &GmailSender{service: svc, from: from, logger: logger}, nil
}

// Send delivers the message. The RFC 822 payload is assembled here and
// base64url-encoded as the API requires.
func (s *GmailSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("recipient is required")
	}

	raw := encodeMessage(s.from, msg)
	_, err := s.service.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}

	s.logger.Info("email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

func encodeMessage(from string, msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}
