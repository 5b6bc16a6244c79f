package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/localnerve/securepulse/internal/auth"
	"github.com/localnerve/securepulse/internal/config"
	"github.com/localnerve/securepulse/internal/database"
	"github.com/localnerve/securepulse/internal/handlers"
	"github.com/localnerve/securepulse/internal/logger"
	"github.com/localnerve/securepulse/internal/models"
	"github.com/localnerve/securepulse/internal/notify"
	"github.com/localnerve/securepulse/internal/router"
	"github.com/localnerve/securepulse/internal/rules"
	"github.com/localnerve/securepulse/internal/services"
	"github.com/localnerve/securepulse/internal/store"
	"go.uber.org/zap"
)

// @title SecurePulse API
// @version 1.0.0
// @description Wearable safety backend: vital-sign ingestion, emergency alerts and contact notification

// @contact.name API Support
// @contact.url https://github.com/localnerve/securepulse
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server failed", zap.Error(err))
	}
	log.Info("Server stopped")
}

func run(cfg *config.Config, log *zap.Logger) error {
	// Run migrations with the schema owner, then drop that pool
	adminDB, err := database.ConnectAdmin(cfg, log)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(adminDB); err != nil {
		_ = database.Close(adminDB)
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := database.Close(adminDB); err != nil {
		log.Warn("Failed to close migration pool", zap.Error(err))
	}

	// Connect to database (app pool)
	appDB, err := database.Connect(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(appDB)

	identities := &store.IdentityStore{DB: appDB}
	telemetry := &store.TelemetryStore{DB: appDB}
	alertStore := &store.AlertStore{DB: appDB}
	deliveries := &store.NotificationStore{DB: appDB}

	queue, rdb, err := newQueue(cfg, log)
	if err != nil {
		return err
	}
	defer queue.Close()
	if rdb != nil {
		defer rdb.Close()
	}

	emailSink, smsSink, err := newNotifiers(cfg, log)
	if err != nil {
		return err
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTExpiry)

	alerts := &services.AlertManager{
		Alerts:           alertStore,
		Bracelets:        identities,
		Queue:            queue,
		Logger:           log.Named("alerts"),
		EnforceOwnership: cfg.EnforceBraceletOwnership,
	}
	ingestor := &services.Ingestor{
		Samples:          telemetry,
		Bracelets:        identities,
		Alerts:           alerts,
		Rules:            rules.Default(),
		Logger:           log.Named("ingest"),
		EnforceOwnership: cfg.EnforceBraceletOwnership,
	}
	accounts := &services.Accounts{
		Identities: identities,
		Tokens:     tokens,
		Queue:      queue,
		Logger:     log.Named("accounts"),
	}

	app := router.New(router.Options{
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         log,
		Tokens:         tokens,
		AccessLog:      true,
		Handlers: router.Handlers{
			Auth:       &handlers.AuthHandler{Accounts: accounts, Logger: log},
			Users:      &handlers.UserHandler{Accounts: accounts, Logger: log},
			Bracelets:  &handlers.BraceletHandler{Bracelets: &services.Bracelets{Identities: identities}, Logger: log},
			HealthData: &handlers.HealthDataHandler{Ingestor: ingestor, Samples: telemetry, Logger: log},
			Alerts:     &handlers.AlertHandler{Alerts: alerts, Logger: log},
			Health: &handlers.HealthHandler{Checker: &services.HealthChecker{
				Config: cfg,
				DB:     appDB,
				Redis:  rdb,
				Logger: log.Named("health"),
			}},
		},
	})

	worker := &notify.Worker{
		Queue: queue,
		Handler: &notify.Dispatcher{
			Users:       identities,
			Alerts:      alertStore,
			Deliveries:  deliveries,
			Email:       emailSink,
			SMS:         smsSink,
			Logger:      log.Named("notify"),
			SendTimeout: cfg.NotifySendTimeout,
		},
		Concurrency: cfg.NotifyWorkers,
		Logger:      log.Named("worker"),
		RetryDelay:  time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerDone := make(chan error, 1)
	go func() {
		workerDone <- worker.Run(ctx)
	}()

	serverDone := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Port))
		serverDone <- app.Listen(":" + cfg.Port)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("Gracefully shutting down...")
	case serveErr = <-serverDone:
		stop()
	}

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Warn("Server shutdown", zap.Error(err))
	}
	if err := <-workerDone; err != nil {
		log.Warn("Notification worker exited with error", zap.Error(err))
	}
	return serveErr
}

// newQueue returns a Redis-backed queue when REDIS_ADDR is set, otherwise an
// in-process one.
func newQueue(cfg *config.Config, log *zap.Logger) (notify.Queue, *redis.Client, error) {
	if cfg.RedisAddr == "" {
		log.Info("Using in-process notification queue", zap.Int("size", cfg.NotifyQueueSize))
		return notify.NewChannelQueue(cfg.NotifyQueueSize), nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	log.Info("Using redis notification queue",
		zap.String("addr", cfg.RedisAddr),
		zap.String("key", cfg.NotifyQueueKey),
	)
	return notify.NewRedisQueue(rdb, cfg.NotifyQueueKey), rdb, nil
}

// newNotifiers builds the email and SMS sinks. Unconfigured providers fall
// back to logging the message.
func newNotifiers(cfg *config.Config, log *zap.Logger) (notify.Notifier, notify.Notifier, error) {
	var emailSink, smsSink notify.Notifier

	if cfg.SMTPEnabled() {
		email, err := notify.NewEmailNotifier(notify.EmailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			Timeout:  cfg.NotifySendTimeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to configure email: %w", err)
		}
		emailSink = email
	} else {
		log.Warn("SMTP not configured, emails will only be logged")
		emailSink = &notify.LogNotifier{Logger: log.Named("email"), For: models.ChannelEmail}
	}

	if cfg.SMSEnabled() {
		smsSink = notify.NewSMSNotifier(notify.SMSConfig{
			BaseURL:    cfg.TwilioBaseURL,
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			From:       cfg.TwilioFromNumber,
			Timeout:    cfg.NotifySendTimeout,
		})
	} else {
		log.Warn("Twilio not configured, SMS will only be logged")
		smsSink = &notify.LogNotifier{Logger: log.Named("sms"), For: models.ChannelSMS}
	}

	return emailSink, smsSink, nil
}
