// Package app wires configuration, storage backends and use cases into one
// value shared by the HTTP server and the command line tool.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fekuna/boutique-catalog-service/config"
	"github.com/fekuna/boutique-catalog-service/internal/auth"
	"github.com/fekuna/boutique-catalog-service/internal/category"
	categoryrepo "github.com/fekuna/boutique-catalog-service/internal/category/repository"
	categoryuc "github.com/fekuna/boutique-catalog-service/internal/category/usecase"
	"github.com/fekuna/boutique-catalog-service/internal/dashboard"
	"github.com/fekuna/boutique-catalog-service/internal/events"
	"github.com/fekuna/boutique-catalog-service/internal/media"
	"github.com/fekuna/boutique-catalog-service/internal/media/bucket"
	"github.com/fekuna/boutique-catalog-service/internal/migrations"
	"github.com/fekuna/boutique-catalog-service/internal/product"
	productrepo "github.com/fekuna/boutique-catalog-service/internal/product/repository"
	productuc "github.com/fekuna/boutique-catalog-service/internal/product/usecase"
	"github.com/fekuna/boutique-catalog-service/internal/seed"
	"github.com/fekuna/boutique-catalog-service/internal/setting"
	settingrepo "github.com/fekuna/boutique-catalog-service/internal/setting/repository"
	settinguc "github.com/fekuna/boutique-catalog-service/internal/setting/usecase"
	"github.com/fekuna/boutique-catalog-service/internal/storefront"
	"github.com/fekuna/boutique-catalog-service/pkg/broker"
	"github.com/fekuna/boutique-catalog-service/pkg/cache"
	"github.com/fekuna/boutique-catalog-service/pkg/database/postgres"
	"github.com/fekuna/boutique-catalog-service/pkg/database/sqlite"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/fekuna/boutique-catalog-service/pkg/search"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const memoryPath = ":memory:"

type App struct {
	Config *config.Config
	Logger logger.ZapLogger
	DB     *sqlx.DB

	Categories category.UseCase
	Products   product.UseCase
	Settings   setting.UseCase
	Uploader   *media.Uploader
	Storefront *storefront.Service
	Dashboard  *dashboard.Service
	Seeder     *seed.Seeder

	Tokens        *auth.Tokens
	Authenticator *auth.Authenticator

	// Listener is nil unless Kafka brokers are configured.
	Listener *events.Listener

	closers []func() error
}

// NewLogger builds the process logger the same way for every binary:
// development gets a debug console logger, everything else info level JSON.
func NewLogger(cfg *config.Config) logger.ZapLogger {
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}
	return logger.NewZapLogger(logConfig)
}

// OpenDB connects to the configured driver without touching the schema.
func OpenDB(cfg *config.Config) (*sqlx.DB, error) {
	switch cfg.Database.Driver {
	case migrations.DialectSQLite:
		if cfg.Database.SQLitePath == memoryPath {
			return sqlite.OpenMemory()
		}
		return sqlite.Open(cfg.Database.SQLitePath)
	case migrations.DialectPostgres, "":
		return postgres.NewPostgres(&postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
	}
	return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Database.Driver)
}

// New connects every backend, applies pending migrations and builds the use
// cases. Redis, Kafka and Elasticsearch are optional: an empty address
// disables them and an unreachable one is logged and skipped.
func New(ctx context.Context, cfg *config.Config, log logger.ZapLogger) (*App, error) {
	a := &App{Config: cfg, Logger: log}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	a.DB = db
	a.closers = append(a.closers, db.Close)
	log.Info("Connected to database", zap.String("driver", db.DriverName()))

	applied, err := migrations.Apply(ctx, db)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	if len(applied) > 0 {
		log.Info("Applied migrations", zap.Strings("versions", applied))
	}

	source := instanceID()
	publisher := a.connectKafka(source)

	opts := productuc.Options{
		Publisher: publisher,
		CacheTTL:  cfg.Redis.ListTTL,
	}
	if rc := a.connectRedis(); rc != nil {
		opts.Cache = rc
	}
	if es := a.connectElastic(); es != nil {
		opts.Search = es
	}

	store, err := a.openBucket(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Uploader = media.NewUploader(store, cfg.Storage.PublicBaseURL, cfg.Storage.Bucket, log)
	opts.Images = a.Uploader

	a.Categories = categoryuc.NewCategoryUseCase(categoryrepo.NewSQLRepository(db), publisher, log)
	if cfg.Catalog.ValidateCategory {
		opts.Categories = a.Categories
	}
	a.Products = productuc.NewProductUseCase(productrepo.NewSQLRepository(db), opts, log)
	a.Settings = settinguc.NewSettingUseCase(settingrepo.NewSQLRepository(db), cfg.Catalog.SettingsTTL, publisher, log)

	a.Storefront = storefront.NewService(a.Products, a.Categories, a.Settings, cfg.Catalog.StorefrontPageSize)
	a.Dashboard = dashboard.NewService(a.Products, a.Categories)
	a.Seeder = seed.NewSeeder(a.Categories, a.Products, a.Settings, log)

	a.Tokens = auth.NewTokens(cfg.Admin.JWTSecret, cfg.Admin.TokenTTL)
	a.Authenticator = auth.NewAuthenticator(cfg.Admin.Email, cfg.Admin.PasswordHash, a.Tokens)
	if !a.Authenticator.Enabled() {
		log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD_HASH not set, admin login is disabled")
	}

	if a.Listener != nil {
		a.Listener.On(events.SettingUpdated, func(ctx context.Context, evt events.Event) {
			a.Settings.InvalidateCache()
		})
	}
	return a, nil
}

func (a *App) connectKafka(source string) events.Publisher {
	cfg := a.Config.Kafka
	if len(cfg.Brokers) == 0 {
		return events.NopPublisher{}
	}

	producer := broker.NewProducer(&broker.Config{Brokers: cfg.Brokers, Topic: cfg.Topic})
	a.closers = append(a.closers, producer.Close)

	// Every instance needs its own group so each one sees every event.
	groupID := cfg.GroupID
	if groupID == "" {
		groupID = "boutique-catalog-" + source
	}
	consumer := broker.NewConsumer(&broker.Config{Brokers: cfg.Brokers, Topic: cfg.Topic, GroupID: groupID})
	a.closers = append(a.closers, consumer.Close)
	a.Listener = events.NewListener(consumer, source, a.Logger)

	a.Logger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Brokers), zap.String("topic", cfg.Topic))
	return events.NewKafkaPublisher(producer, source, a.Logger)
}

func (a *App) connectRedis() *cache.RedisClient {
	cfg := a.Config.Redis
	if cfg.Addr == "" {
		return nil
	}
	rc, err := cache.NewRedisClient(&cache.Config{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err != nil {
		a.Logger.Warn("Could not connect to Redis, product lists are not cached", zap.Error(err))
		return nil
	}
	a.closers = append(a.closers, rc.Close)
	a.Logger.Info("Connected to Redis", zap.String("addr", cfg.Addr))
	return rc
}

func (a *App) connectElastic() *search.Client {
	cfg := a.Config.Elastic
	if len(cfg.Addresses) == 0 {
		return nil
	}
	es, err := search.NewClient(&search.Config{Addresses: cfg.Addresses, Username: cfg.Username, Password: cfg.Password})
	if err != nil {
		a.Logger.Warn("Could not connect to Elasticsearch, searching the database instead", zap.Error(err))
		return nil
	}
	a.Logger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Addresses))
	return es
}

func (a *App) openBucket(ctx context.Context) (bucket.Bucket, error) {
	cfg := a.Config.Storage
	switch cfg.Driver {
	case "minio":
		m, err := bucket.NewMinio(&bucket.MinioConfig{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Region:    cfg.Region,
			UseSSL:    cfg.UseSSL,
			Bucket:    cfg.Bucket,
		})
		if err != nil {
			return nil, err
		}
		if err := m.EnsureBucket(ctx, cfg.Region); err != nil {
			return nil, fmt.Errorf("ensure bucket %s: %w", cfg.Bucket, err)
		}
		a.Logger.Info("Using object storage", zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.Bucket))
		return m, nil
	case "local", "":
		l, err := bucket.NewLocal(cfg.LocalDir)
		if err != nil {
			return nil, err
		}
		a.Logger.Info("Using local image storage", zap.String("dir", cfg.LocalDir))
		return l, nil
	}
	return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Driver)
}

// Close releases every backend opened by New, last opened first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func instanceID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "catalog"
	}
	return host + "-" + uuid.NewString()[:8]
}
