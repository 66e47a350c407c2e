package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"microblog/internal/config"
)

// Mailer sends transactional mail over SMTP. Sends run in a goroutine so a
// slow mail server never blocks a request, mirroring how handlers call it
// fire-and-forget.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	sender   string
	baseURL  string
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.MailServer,
		port:     cfg.MailPort,
		username: cfg.MailUsername,
		password: cfg.MailPassword,
		sender:   cfg.MailSender,
		baseURL:  cfg.BaseURL,
	}
}

// SendPasswordReset mails the reset link for the given token. Returns
// immediately; delivery happens in the background.
func (m *Mailer) SendPasswordReset(to, username, token string) {
	link := fmt.Sprintf("%s/auth/reset_password/%s", m.baseURL, token)
	body := fmt.Sprintf(
		"Dear %s,\r\n\r\n"+
			"To reset your password visit the following link:\r\n\r\n%s\r\n\r\n"+
			"If you have not requested a password reset simply ignore this message.\r\n",
		username, link)

	go func() {
		if err := m.send([]string{to}, "[Microblog] Reset Your Password", body); err != nil {
			log.Printf("[Mailer] Failed to send password reset to %s: %v", to, err)
		}
	}()
}

func (m *Mailer) send(to []string, subject, body string) error {
	if m.host == "" {
		// No mail server configured (development). Log instead of sending.
		log.Printf("[Mailer] Mail server not configured, dropping %q to %s", subject, strings.Join(to, ","))
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.sender, strings.Join(to, ","), subject, body)

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.sender, to, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
