package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, DriverMongoDB, cfg.Storage.Driver)
	assert.Equal(t, "skillprize", cfg.MongoDB.Database)
	assert.Equal(t, ProviderMock, cfg.Payment.Provider)
	assert.Equal(t, time.Second, cfg.Payment.MockDelay)
	assert.Equal(t, 24*60*60, cfg.JWT.ExpiresIn)
	assert.False(t, cfg.Quiz.RevealAnswer)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  port: "8080"
storage:
  driver: memory
  seed: true
payment:
  mockdelay: 250ms
quiz:
  revealanswer: true
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port, "environment should override the file")
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.Payment.MockDelay)
	assert.True(t, cfg.Quiz.RevealAnswer)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			JWT:     JWTConfig{Secret: "s"},
			Storage: StorageConfig{Driver: DriverMemory},
			Payment: PaymentConfig{Provider: ProviderMock},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Driver = "postgres"
		assert.Error(t, cfg.Validate())
	})

	t.Run("paypal without credentials", func(t *testing.T) {
		cfg := base()
		cfg.Payment.Provider = ProviderPayPal
		assert.Error(t, cfg.Validate())

		cfg.Payment.PayPal = PayPalConfig{ClientID: "id", ClientSecret: "secret"}
		assert.NoError(t, cfg.Validate())
	})
}
