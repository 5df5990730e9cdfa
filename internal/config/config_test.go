package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("REMINDER_EMAILS", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "America/Sao_Paulo", cfg.BusinessTimezone)
	assert.Equal(t, time.Hour, cfg.ReminderLead)
	assert.Equal(t, time.Minute, cfg.ReminderInterval)
	assert.False(t, cfg.SMTPEnabled())
	assert.False(t, cfg.S3Enabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("REMINDER_LEAD_MINUTES", "30")
	t.Setenv("REMINDER_EMAILS", "front@clinic.test, owner@clinic.test ,")
	t.Setenv("SMTP_HOST", "smtp.clinic.test")
	t.Setenv("S3_BUCKET", "clinic-reports")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, 30*time.Minute, cfg.ReminderLead)
	assert.Equal(t, []string{"front@clinic.test", "owner@clinic.test"}, cfg.ReminderEmails)
	assert.True(t, cfg.SMTPEnabled())
	assert.True(t, cfg.S3Enabled())
}
