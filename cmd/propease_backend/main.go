package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/propease_crm/internal/adapters/cache"
	"github.com/SscSPs/propease_crm/internal/adapters/events"
	"github.com/SscSPs/propease_crm/internal/adapters/mail"
	"github.com/SscSPs/propease_crm/internal/adapters/storage"
	"github.com/SscSPs/propease_crm/internal/core/ports/outbound"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/SscSPs/propease_crm/internal/core/services"
	"github.com/SscSPs/propease_crm/internal/handlers"
	"github.com/SscSPs/propease_crm/internal/middleware"
	"github.com/SscSPs/propease_crm/internal/platform/config"
	"github.com/SscSPs/propease_crm/internal/repositories/database/pgsql"
	"github.com/SscSPs/propease_crm/internal/repositories/memory"
	"github.com/SscSPs/propease_crm/internal/seed"
	"github.com/SscSPs/propease_crm/internal/utils"
	"github.com/SscSPs/propease_crm/internal/validation"
	"github.com/SscSPs/propease_crm/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title PropEase CRM API
// @version 1.0
// @description Real-estate CRM backend: projects, inventory, clients, enquiries, bookings and follow-ups.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()

	adapters, closeAdapters, err := setupAdapters(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize adapters", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeAdapters()

	serviceContainer := services.NewServiceContainer(cfg, repos, adapters)

	validation.RegisterWithGin()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	worker := services.NewReminderWorker(serviceContainer.FollowUp, cfg.ReminderInterval, cfg.ReminderTimeout, logger)
	workerDone := worker.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
	// The deferred closers must not run under an in-flight reminder run.
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		logger.Warn("Reminder worker did not stop before the shutdown deadline")
	}
}

func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		store, err := memory.NewStore(cfg.MemorySnapshotPath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		if cfg.SeedOnStart && store.IsEmpty() {
			if err := seedStore(ctx, store, cfg); err != nil {
				return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("seed demo data: %w", err)
			}
			logger.Info("Seeded demo data", slog.String("snapshot", cfg.MemorySnapshotPath))
		}
		return memory.NewRepositoryProvider(store), func() {}, nil

	case config.StorageDriverPostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")
		if cfg.RunMigrations {
			if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
				dbPool.Close()
				return portsrepo.RepositoryProvider{}, nil, err
			}
		}
		return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil

	default:
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func seedStore(ctx context.Context, store *memory.Store, cfg *config.Config) error {
	doc, err := seed.Demo()
	if err != nil {
		return err
	}
	snap, err := seed.Build(doc, time.Now(), cfg.Location)
	if err != nil {
		return err
	}
	if err := store.Import(snap); err != nil {
		return err
	}
	store.Flush(ctx)
	return nil
}

// runMigrations applies every pending "up" migration from ./migrations over
// a short-lived database/sql connection.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("ping migration connection: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migrate driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// setupAdapters builds the optional outbound adapters. Anything without
// configuration falls back to a local implementation or is left nil.
func setupAdapters(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.Adapters, func(), error) {
	var (
		adapters services.Adapters
		closers  []func() error
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("Error closing adapter", slog.String("error", err.Error()))
			}
		}
	}

	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return adapters, nil, err
		}
		reportCache, err := cache.NewRedisReportCache(ctx, client)
		if err != nil {
			_ = client.Close()
			// The dashboard still works uncached.
			logger.Warn("Redis unavailable, dashboard cache disabled", slog.String("error", err.Error()))
		} else {
			adapters.Cache = reportCache
			closers = append(closers, reportCache.Close)
		}
	}

	var publisher outbound.EventPublisher = events.NewLogPublisher(logger)
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, domain events are only logged", slog.String("error", err.Error()))
		} else {
			publisher = amqpPublisher
			logger.Info("Publishing domain events", slog.String("exchange", cfg.AMQPExchange))
		}
	}
	adapters.Publisher = publisher
	closers = append(closers, publisher.Close)

	if cfg.SMTPHost != "" {
		mailer, err := mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			Sender:   cfg.SMTPSender,
		})
		if err != nil {
			closeAll()
			return adapters, nil, err
		}
		adapters.Mailer = mailer
	}

	docStorage, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		closeAll()
		return adapters, nil, err
	}
	adapters.Storage = docStorage

	return adapters, closeAll, nil
}
