package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DEFAULT_TAX_RATE", "")
	t.Setenv("DEFAULT_DELIVERY_FEE", "")
	t.Setenv("JWT_ACCESS_TTL", "")
	t.Setenv("PUBLIC_APP_URL", "https://order.example.com/")

	s := Load()
	assert.Equal(t, 0.10, s.DefaultTaxRate)
	assert.Equal(t, 5.99, s.DefaultDeliveryFee)
	assert.Equal(t, 24*time.Hour, s.AccessTokenTTL)
	assert.Equal(t, "https://order.example.com", s.PublicAppURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DEFAULT_TAX_RATE", "0.08")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_FROM", "noreply@example.com")

	s := Load()
	assert.Equal(t, "sqlite", s.DBDriver)
	assert.Equal(t, 6543, s.DBPort)
	assert.Equal(t, 0.08, s.DefaultTaxRate)
	assert.True(t, s.LogJSON)
	assert.True(t, s.SMTPEnabled())
}

func TestValidateRequiresJWTSecretOutsideDevelopment(t *testing.T) {
	s := Settings{AppEnv: "production"}
	assert.ErrorIs(t, s.Validate(), ErrMissingJWTSecret)

	s.JWTSecret = "prod-secret"
	assert.NoError(t, s.Validate())

	dev := Settings{AppEnv: "development"}
	assert.NoError(t, dev.Validate())
}

func TestLoadWithoutAppEnvIsDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")

	s := Load()
	assert.True(t, s.IsDevelopment())
	assert.NoError(t, s.Validate())

	t.Setenv("APP_ENV", "staging")
	assert.ErrorIs(t, Load().Validate(), ErrMissingJWTSecret)
}
