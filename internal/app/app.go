package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/api/rest"
	"github.com/Dhoini/olio-backoffice/internal/api/rest/handlers"
	"github.com/Dhoini/olio-backoffice/internal/auth"
	"github.com/Dhoini/olio-backoffice/internal/config"
	"github.com/Dhoini/olio-backoffice/internal/db"
	"github.com/Dhoini/olio-backoffice/internal/intake"
	"github.com/Dhoini/olio-backoffice/internal/kafka"
	"github.com/Dhoini/olio-backoffice/internal/metrics"
	"github.com/Dhoini/olio-backoffice/internal/middleware"
	"github.com/Dhoini/olio-backoffice/internal/notify"
	"github.com/Dhoini/olio-backoffice/internal/repository"
	"github.com/Dhoini/olio-backoffice/internal/repository/postgres"
	"github.com/Dhoini/olio-backoffice/internal/service"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// App представляет собой контейнер для всех компонентов приложения
type App struct {
	Config *config.Config
	Logger *logger.Logger
	DB     *db.DBClient
	Cache  *repository.RedisCacheRepository
	Events kafka.Publisher
	Auth   *auth.Service
	Intake *intake.Service
	Server *rest.Server
}

// OpenDatabase подключается к базе данных. Используется сервером и командами CLI.
func OpenDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) (*db.DBClient, error) {
	return db.NewDBClient(ctx, db.Options{
		DSN:            cfg.Database.DSN,
		MaxOpenConns:   cfg.Database.MaxOpenConns,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	}, log.Named("db"))
}

// OpenCache подключается к Redis, если адрес задан. Без адреса возвращает nil.
func OpenCache(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repository.RedisCacheRepository, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	return repository.NewRedisCacheRepository(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log.Named("redis"))
}

// NewAuthService собирает сервис аутентификации поверх хранилища администратора
func NewAuthService(cfg *config.Config, store repository.AdminAccountStore, log *logger.Logger) (*auth.Service, error) {
	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, err
	}
	return auth.NewService(store, auth.NewBcryptHasher(auth.DefaultCost), tokens, log.Named("auth"))
}

// NewApp создает и инициализирует новый экземпляр приложения.
// Redis и Kafka необязательны: при ошибке подключения приложение работает без них.
func NewApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a := &App{Config: cfg, Logger: log}

	dbClient, err := OpenDatabase(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	a.DB = dbClient

	if cfg.Database.MigrateOnStart {
		applied, err := dbClient.Migrate(ctx)
		if err != nil {
			a.Close()
			return nil, err
		}
		if len(applied) > 0 {
			log.Infow("Migrations applied", "versions", applied)
		}
	}

	cache, err := OpenCache(ctx, cfg, log)
	if err != nil {
		log.Warnw("Failed to initialize Redis cache, continuing without caching", "error", err)
	}
	a.Cache = cache

	if len(cfg.Kafka.Brokers) > 0 {
		a.Events = openEvents(ctx, cfg.Kafka.Brokers, log)
	}

	sqlDB := dbClient.DB()
	admins := postgres.NewPostgresAdminStore(sqlDB, log)
	customers := postgres.NewPostgresCustomerRepository(sqlDB, log)
	orders := postgres.NewPostgresOrderRepository(sqlDB, log)
	messages := postgres.NewPostgresMessageRepository(sqlDB, log)

	var products repository.ProductRepository = postgres.NewPostgresProductRepository(sqlDB, log)
	if a.Cache != nil {
		products = repository.NewCachedProductRepository(products, a.Cache, log)
		log.Infow("Using cached product repository")
	}

	authService, err := NewAuthService(cfg, admins, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Auth = authService

	registry := metrics.NewRegistry()
	dispatcher := notify.NewDispatcher(admins, newMailer(cfg, log), log)

	a.Intake = intake.NewService(intake.Deps{
		Products:  products,
		Orders:    orders,
		Messages:  messages,
		Customers: customers,
		Notifier:  dispatcher,
		Events:    a.Events,
		Metrics:   metrics.NewIntakeMetrics(registry),
		Log:       log,
	})

	orderService := service.NewOrderService(orders, a.Intake, log)
	messageService := service.NewMessageService(messages, log)
	customerService := service.NewCustomerService(customers, log)
	dashboard := service.NewDashboardService(orders, messages, customers, products, log)

	h := rest.Handlers{
		Auth: handlers.NewAuthHandler(authService, handlers.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Domain: cfg.Auth.CookieDomain,
			Secure: cfg.Auth.CookieSecure || cfg.IsProduction(),
		}, log),
		Orders:    handlers.NewOrderHandler(a.Intake, orderService, products, log),
		Messages:  handlers.NewMessageHandler(a.Intake, messageService, log),
		Customers: handlers.NewCustomerHandler(customerService, log),
		Dashboard: handlers.NewDashboardHandler(dashboard, products, log),
		Health:    handlers.NewHealthHandler(dbClient, log),
	}
	jwt := middleware.NewJWTMiddleware(authService, cfg.Auth.CookieName, log)

	router := rest.SetupRouter(h, jwt, registry, log)
	a.Server = rest.NewServer(router, rest.ServerConfig{
		Port:         cfg.App.Port,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}, log)

	return a, nil
}

// Run запускает HTTP сервер и останавливает его при отмене ctx
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.Logger.Infow("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.Logger.Infow("HTTP server gracefully stopped")
	return <-errCh
}

// Close освобождает соединения. Ошибки логируются.
func (a *App) Close() {
	var errs []error
	if a.Events != nil {
		errs = append(errs, a.Events.Close())
	}
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if err := errors.Join(errs...); err != nil {
		a.Logger.Errorw("Error during cleanup", "error", err)
		return
	}
	a.Logger.Infow("Cleanup finished")
}

func openEvents(ctx context.Context, brokers []string, log *logger.Logger) kafka.Publisher {
	if err := kafka.EnsureKafkaTopics(ctx, brokers, log); err != nil {
		log.Warnw("Failed to ensure Kafka topics", "error", err)
	}
	producer, err := kafka.NewKafkaProducer(brokers, log)
	if err != nil {
		log.Errorw("Failed to initialize Kafka producer, continuing without event publishing", "error", err)
		return nil
	}
	log.Infow("Kafka producer initialized", "brokers", brokers)
	return producer
}

func newMailer(cfg *config.Config, log *logger.Logger) notify.Mailer {
	if cfg.SMTP.Host == "" {
		log.Warnw("SMTP host is not set, notifications will only be logged")
		return notify.NewLogMailer(log)
	}
	return notify.NewSMTPMailer(notify.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
}
