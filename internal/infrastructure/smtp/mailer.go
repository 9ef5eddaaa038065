package smtp

import (
	"fmt"
	"net/smtp"

	"github.com/shike-app/auth-api/internal/config"
)

// Mailer sends emails. Delivery is best-effort; callers decide whether a
// send failure invalidates the work that preceded it.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) SendEmail(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}

// VerificationCodeSubject is the subject line for recovery-code emails.
const VerificationCodeSubject = "Shike password reset verification code"

// VerificationCodeBody renders the recovery-code email.
func VerificationCodeBody(code string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #FF6B35;">Shike Cooking Assistant</h2>
  <p>Hello!</p>
  <p>You requested a password reset. Your verification code is:</p>
  <div style="text-align: center; margin: 30px 0;">
    <span style="font-size: 32px; font-weight: bold; color: #FF6B35; letter-spacing: 8px;">%s</span>
  </div>
  <p>The code is valid for 15 minutes.</p>
  <p>If you did not request this, you can ignore this email.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #666; font-size: 12px;">The Shike team</p>
</div>`, code)
}
