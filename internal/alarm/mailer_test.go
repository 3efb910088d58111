package alarm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tinyfeed/internal/config"
)

func TestNewMailerCopiesConfigFields(t *testing.T) {
	cfg := &config.Config{
		From:     "feeder@example.com",
		To:       "oncall@example.com",
		SMTP:     "smtp.example.com",
		Port:     587,
		Username: "feeder",
		Password: "secret",
	}
	m := NewMailer(cfg)
	require.Equal(t, "feeder@example.com", m.from)
	require.Equal(t, "oncall@example.com", m.to)
	require.Equal(t, "smtp.example.com", m.smtp)
	require.Equal(t, 587, m.port)
	require.Equal(t, "feeder", m.username)
	require.Equal(t, "secret", m.password)
}
