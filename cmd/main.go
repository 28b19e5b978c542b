package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/softglass/calculator-backend/application/auth"
	consultationapp "github.com/softglass/calculator-backend/application/consultation"
	orderapp "github.com/softglass/calculator-backend/application/order"
	submissionapp "github.com/softglass/calculator-backend/application/submission"
	"github.com/softglass/calculator-backend/application/token"
	userapp "github.com/softglass/calculator-backend/application/user"
	"github.com/softglass/calculator-backend/cmd/config"
	redisclient "github.com/softglass/calculator-backend/cmd/redis"
	_ "github.com/softglass/calculator-backend/docs"
	"github.com/softglass/calculator-backend/migrations"
	orderRepo "github.com/softglass/calculator-backend/repository/order"
	redisRepo "github.com/softglass/calculator-backend/repository/redis"
	txRepo "github.com/softglass/calculator-backend/repository/tx"
	userRepo "github.com/softglass/calculator-backend/repository/user"
	"github.com/softglass/calculator-backend/thirdparty/mailer"
	"github.com/softglass/calculator-backend/thirdparty/rabbitmq"
	"github.com/softglass/calculator-backend/thirdparty/telegram"
	"github.com/softglass/calculator-backend/transport"
	"github.com/softglass/calculator-backend/utils/logger"
	"github.com/softglass/calculator-backend/utils/password"
	validatorx "github.com/softglass/calculator-backend/utils/validator"
	"go.uber.org/zap"
)

// @title Soft Glass Calculator API
// @version 1.0
// @description Accounts, orders and lead notifications for the PVC window storefront
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey AuthToken
// @in header
// @name X-Auth-Token
func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment), zap.String("db_driver", cfg.Database.Driver))
	if cfg.Auth.GeneratedSecret {
		logger.Warn("JWT_SECRET is not set, using a random secret; issued tokens will not survive a restart")
	}

	validatorx.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := sqlx.Connect(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}
	defer db.Close()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if cfg.Database.AutoMigrate {
		if err := migrations.Run(ctx, db.DB, cfg.Database.Driver); err != nil {
			logger.Fatal("err run migrations", zap.Error(err))
		}
	}

	// Initialize Redis client
	if cfg.RedisEnabled() {
		if err := redisclient.New(cfg); err != nil {
			logger.Fatal("err connect redis", zap.Error(err))
		}
		defer func() {
			_ = redisclient.Close()
		}()
	} else {
		logger.Info("REDIS_HOST not set, profile cache disabled")
	}

	// Telegram bot
	var notifier telegram.Notifier
	if cfg.TelegramEnabled() {
		notifier = telegram.NewClient(cfg.Telegram)
	} else {
		logger.Warn("Telegram credentials not configured, consultation requests will be rejected")
	}

	// RabbitMQ
	var publisher rabbitmq.EventPublisher
	if cfg.RabbitMQEnabled() {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
		}
		defer p.Close()
		publisher = p

		if cfg.RabbitMQ.Consume && cfg.TelegramEnabled() && !cfg.FunctionMode() {
			// The relay gets its own client so its breaker never trips the consultation endpoint.
			relay := telegram.NewClient(cfg.Telegram, telegram.WithBreakerName("telegram-relay"))
			c, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, relay)
			if err != nil {
				logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
			}
			defer c.Close()
			if err := c.Start(ctx); err != nil {
				logger.Fatal("err start rabbitmq consumer", zap.Error(err))
			}
			logger.Info("Order event consumer started")
		}
	}

	hasher, err := password.New(cfg.Auth.PasswordHasher)
	if err != nil {
		logger.Fatal("err password hasher", zap.Error(err))
	}
	tokens := token.NewTokenService(cfg.Auth.JWTSecret)

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	RedisRepo := redisRepo.NewRepository(redisclient.Get())

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, TxRepo, UserRepo, RedisRepo, hasher, tokens)
	OrderApp := orderapp.NewOrderApp(cfg, OrderRepo, publisher)
	ConsultationApp := consultationapp.NewConsultationApp(notifier)
	SubmissionApp := submissionapp.NewSubmissionApp(cfg, OrderRepo, mailer.NewSMTPMailer(cfg.SMTP), publisher)

	httpTransport := transport.NewTransport(cfg, &transport.RestHandler{
		UserApp:         UserApp,
		OrderApp:        OrderApp,
		ConsultationApp: ConsultationApp,
		SubmissionApp:   SubmissionApp,
		Gateway:         auth.NewGateway(tokens),
	})

	if cfg.FunctionMode() {
		if err := transport.ServeEventStream(ctx, httpTransport, cfg.FunctionRoute, os.Stdin, os.Stdout); err != nil {
			logger.Fatal("err serve event", zap.Error(err))
		}
		return
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
