package mailer

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

// Mailer is the outbound notification sink. Sends are best-effort: callers
// dispatch after commit and log failures instead of surfacing them.
type Mailer interface {
	Send(to, subject, html string) error
}

type smtpMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPMailer builds a mailer from SMTP_HOST, SMTP_PORT, SMTP_USER and
// SMTP_PASSWORD. EMAIL_FROM overrides the sender address.
func NewSMTPMailer() Mailer {
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}
	return &smtpMailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     from,
	}
}

func (m *smtpMailer) Send(to, subject, html string) error {
	if m.host == "" {
		return fmt.Errorf("smtp not configured")
	}

	var msg strings.Builder
	msg.WriteString("From: " + m.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(html)

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, []byte(msg.String()))
}
