package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"stockroom/api/internal/config"
)

// Message is a single outbound email.
type Message struct {
	Subject string
	HTML    string
	To      string
	From    string
}

// Mailer delivers messages synchronously; a failed delivery surfaces as an
// error to the caller instead of being logged and dropped.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends via an authenticated SMTP relay.
type SMTPMailer struct {
	cfg config.MailConfig
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	if m.cfg.SMTPHost == "" || m.cfg.Username == "" {
		return fmt.Errorf("mail credentials not configured")
	}

	from := msg.From
	if from == "" {
		from = m.cfg.From
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)

	if err := smtp.SendMail(addr, auth, from, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
