// Package mail sends verification-code e-mails through an SMTP relay.
package mail

import (
	"fmt"

	"github.com/bluegyufordev/matzip-server/internal/config"
	"gopkg.in/gomail.v2"
)

// Sender delivers a verification code to an e-mail address.
type Sender interface {
	SendVerificationCode(to, code string) error
}

// SMTPSender sends mail via a configured SMTP relay using gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds an SMTPSender from the mail configuration.
func NewSMTPSender(cfg config.Mail) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendVerificationCode implements [Sender].
func (s *SMTPSender) SendVerificationCode(to, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "이메일 인증번호 안내")
	m.SetBody("text/html", verificationBody(code))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}

func verificationBody(code string) string {
	return fmt.Sprintf(`
	<h2>이메일 인증</h2>
	<p>안녕하세요,</p>
	<p>아래 인증번호를 입력하여 이메일 인증을 완료해주세요:</p>
	<h1>%s</h1>
	<p>인증번호는 10분 동안 유효합니다.</p>
	<br>
	<p>감사합니다.</p>
	`, code)
}
