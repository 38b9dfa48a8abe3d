package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/mailservice"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

type application struct {
	config      *Config
	logger      zerolog.Logger
	userService *userservice.UserService
	blogService *blogservice.BlogService
	mailService *mailservice.MailService
	limiter     *ipRateLimiter
}

func main() {
	configPath := flag.String("config", ".env", "path to the env configuration file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger := common.NewLogger("production")
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := common.NewLogger(cfg.Environment)

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func run(cfg *Config, logger zerolog.Logger) error {
	dsn := common.DSN(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name)

	db, err := common.NewDB(dsn, cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns, cfg.DB.MaxIdleTime)
	if err != nil {
		return fmt.Errorf("failed to connect to the database: %w", err)
	}
	defer common.CloseDB(db)

	m, err := common.Migrate(dsn)
	if err != nil {
		return err
	}
	m.Close()
	logger.Info().Msg("database migrations applied")

	cache := common.NewCache(cfg.CacheTTL, 2*cfg.CacheTTL)
	tokens := userservice.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)

	app := &application{
		config:      cfg,
		logger:      logger,
		blogService: blogservice.NewBlogService(db, cache),
	}

	var producer common.MessageProducer
	if cfg.RabbitMQ.Host != "" {
		uri := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)

		broker, err := common.NewMessageBroker(uri)
		if err != nil {
			return fmt.Errorf("failed to connect to the message broker: %w", err)
		}
		defer broker.Close()

		if err := common.SetupUserExchange(broker); err != nil {
			return fmt.Errorf("failed to setup the user exchange: %w", err)
		}

		app.mailService = mailservice.NewMailService(broker, mailservice.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.User,
			Password: cfg.Mail.Password,
			Sender:   cfg.Mail.Sender,
		}, logger)

		if err := app.mailService.SendWelcomeEmails(); err != nil {
			return fmt.Errorf("failed to start the welcome email consumer: %w", err)
		}
		defer app.mailService.Close()

		producer = broker
	} else {
		logger.Warn().Msg("RABBITMQ_HOST not set, welcome emails are disabled")
	}

	app.userService = userservice.NewUserService(db, producer, cache, tokens, logger)

	if cfg.Limiter.Enabled {
		app.limiter = newIPRateLimiter(cfg.Limiter.RPS, cfg.Limiter.Burst)
	}

	return app.serve()
}
