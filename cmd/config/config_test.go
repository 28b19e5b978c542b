package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/store")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, "sha256", cfg.Auth.PasswordHasher)
	assert.Equal(t, "s3cr3t", cfg.Auth.JWTSecret)
	assert.False(t, cfg.Auth.GeneratedSecret)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.Telegram.Timeout)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.RabbitMQEnabled())
	assert.False(t, cfg.TelegramEnabled())
	assert.False(t, cfg.FunctionMode())
}

func TestLoad_GeneratesSecretWhenUnset(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/store")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Auth.GeneratedSecret)
	assert.Len(t, cfg.Auth.JWTSecret, 64)

	again, err := Load()
	require.NoError(t, err)
	assert.NotEqual(t, cfg.Auth.JWTSecret, again.Auth.JWTSecret)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing database url", env: map[string]string{"DATABASE_URL": ""}},
		{name: "unknown driver", env: map[string]string{"DATABASE_URL": "x", "DB_DRIVER": "sqlite"}},
		{name: "unknown hasher", env: map[string]string{"DATABASE_URL": "x", "PASSWORD_HASHER": "md5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestConfig_Integrations(t *testing.T) {
	cfg := &Config{
		Redis:    RedisConfig{Host: "cache", Port: 6380},
		RabbitMQ: RabbitMQConfig{Host: "mq"},
		Telegram: TelegramConfig{BotToken: "t", ChatID: "1"},
	}
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
	assert.True(t, cfg.RabbitMQEnabled())
	assert.True(t, cfg.TelegramEnabled())
}

func TestLoad_FunctionMode(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/store")
	t.Setenv("FUNCTION_ROUTE", "/auth")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.FunctionMode())
	assert.Equal(t, "/auth", cfg.FunctionRoute)
}

func TestLoad_RequestTimeoutOutlastsSMTP(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantRequest time.Duration
		wantWrite   time.Duration
	}{
		{
			name:        "defaults already aligned",
			env:         map[string]string{},
			wantRequest: 45 * time.Second,
			wantWrite:   60 * time.Second,
		},
		{
			name:        "request shorter than smtp is raised",
			env:         map[string]string{"HTTP_REQUEST_TIMEOUT": "25s", "SMTP_TIMEOUT": "30s"},
			wantRequest: 45 * time.Second,
			wantWrite:   60 * time.Second,
		},
		{
			name:        "slow smtp pushes both deadlines",
			env:         map[string]string{"SMTP_TIMEOUT": "60s"},
			wantRequest: 75 * time.Second,
			wantWrite:   90 * time.Second,
		},
		{
			name:        "disabled request timeout stays disabled",
			env:         map[string]string{"HTTP_REQUEST_TIMEOUT": "0s"},
			wantRequest: 0,
			wantWrite:   60 * time.Second,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/store")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.wantRequest, cfg.Server.RequestTimeout)
			assert.Equal(t, tt.wantWrite, cfg.Server.WriteTimeout)
			if cfg.Server.RequestTimeout > 0 {
				assert.Greater(t, cfg.Server.RequestTimeout, cfg.SMTP.Timeout)
			}
		})
	}
}
