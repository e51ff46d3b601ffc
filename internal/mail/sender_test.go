package mail

import (
	"testing"

	"github.com/bluegyufordev/matzip-server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPSender(t *testing.T) {
	s := NewSMTPSender(config.Mail{
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		Username: "mailer",
		Password: "secret",
		From:     "noreply@example.com",
	})

	require.NotNil(t, s)
	assert.Equal(t, "noreply@example.com", s.from)
}

func TestVerificationBody_ContainsCode(t *testing.T) {
	body := verificationBody("483920")
	assert.Contains(t, body, "483920")
	assert.Contains(t, body, "이메일 인증")
}
