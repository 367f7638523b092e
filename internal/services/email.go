package services

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer delivers transactional mail (password recovery links) over SMTP.
type Mailer struct {
	host     string
	port     string
	from     string
	password string
}

func NewMailer(host, port, from, password string) *Mailer {
	return &Mailer{host: host, port: port, from: from, password: password}
}

// Send delivers a plain-text message to a single recipient.
func (m *Mailer) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
