package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:""`
	// FunctionRoute switches the binary to function mode: one event is read
	// from stdin, served on this route and the response written to stdout.
	FunctionRoute string `env:"FUNCTION_ROUTE"`

	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Telegram TelegramConfig
	SMTP     SMTPConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port            string        `env:"HTTP_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"45s"`
	MaxBodyBytes    int64         `env:"HTTP_MAX_BODY_BYTES" envDefault:"26214400"`
}

// timeoutHeadroom is the time left for the store and response after the
// slowest outbound call of a request.
const timeoutHeadroom = 15 * time.Second

type DatabaseConfig struct {
	// Driver is the database/sql driver name: "pgx" or "mysql".
	Driver          string        `env:"DB_DRIVER" envDefault:"pgx"`
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET"`
	// PasswordHasher selects the credential hash: "sha256" keeps the legacy
	// unsalted format, "bcrypt" is the hardened option.
	PasswordHasher string `env:"PASSWORD_HASHER" envDefault:"sha256"`

	// GeneratedSecret is set when JWTSecret was empty and a process-wide
	// random secret has been generated instead.
	GeneratedSecret bool
}

type RedisConfig struct {
	Host       string        `env:"REDIS_HOST"`
	Port       int           `env:"REDIS_PORT" envDefault:"6379"`
	Password   string        `env:"REDIS_PASSWORD"`
	DB         int           `env:"REDIS_DB" envDefault:"0"`
	ProfileTTL time.Duration `env:"REDIS_PROFILE_TTL" envDefault:"10m"`
}

type RabbitMQConfig struct {
	Host     string `env:"RABBITMQ_HOST"`
	Port     int    `env:"RABBITMQ_PORT" envDefault:"5672"`
	User     string `env:"RABBITMQ_USER" envDefault:"guest"`
	Password string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	// Consume starts the in-process order event relay.
	Consume bool `env:"RABBITMQ_CONSUME" envDefault:"true"`
}

type TelegramConfig struct {
	BotToken string        `env:"TELEGRAM_BOT_TOKEN"`
	ChatID   string        `env:"TELEGRAM_CHAT_ID"`
	APIURL   string        `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`
	Timeout  time.Duration `env:"TELEGRAM_TIMEOUT" envDefault:"10s"`
}

type SMTPConfig struct {
	Host     string        `env:"SMTP_HOST" envDefault:"smtp.mail.ru"`
	Port     int           `env:"SMTP_PORT" envDefault:"587"`
	User     string        `env:"SMTP_USER" envDefault:"noreply@poehali.dev"`
	Password string        `env:"SMTP_PASSWORD"`
	From     string        `env:"SMTP_FROM" envDefault:"noreply@poehali.dev"`
	To       string        `env:"EMAIL_TO" envDefault:"proekt-polimer@mail.ru"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"30s"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	MaxAge         int      `env:"CORS_MAX_AGE" envDefault:"86400"`
}

// Load reads an optional .env file and parses the environment into Config.
// A missing JWT_SECRET is replaced by one random secret for the lifetime of
// the process.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.alignTimeouts()

	if cfg.Auth.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		cfg.Auth.JWTSecret = secret
		cfg.Auth.GeneratedSecret = true
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "pgx", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	switch c.Auth.PasswordHasher {
	case "sha256", "bcrypt":
	default:
		return fmt.Errorf("unsupported PASSWORD_HASHER %q", c.Auth.PasswordHasher)
	}
	return nil
}

// alignTimeouts keeps the per-request deadline longer than the SMTP timeout,
// and the server write deadline longer than both, so a slow relay fails on
// its own timeout instead of a cancelled request context.
func (c *Config) alignTimeouts() {
	if c.Server.RequestTimeout > 0 {
		if min := c.SMTP.Timeout + timeoutHeadroom; c.Server.RequestTimeout < min {
			c.Server.RequestTimeout = min
		}
	}
	if c.Server.WriteTimeout > 0 {
		if min := c.Server.RequestTimeout + timeoutHeadroom; c.Server.WriteTimeout < min {
			c.Server.WriteTimeout = min
		}
	}
}

func (c *Config) FunctionMode() bool {
	return c.FunctionRoute != ""
}

func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

func (c *Config) RedisAddr() string {
	return net.JoinHostPort(c.Redis.Host, strconv.Itoa(c.Redis.Port))
}

func (c *Config) RabbitMQEnabled() bool {
	return c.RabbitMQ.Host != ""
}

func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
