package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
	Storage  StorageConfig
	Admin    AdminConfig
	Catalog  CatalogConfig
}

type ServerConfig struct {
	AppEnv      string        `env:"APP_ENV" envDefault:"dev"`
	HTTPPort    string        `env:"HTTP_PORT" envDefault:":8080"`
	GRPCPort    string        `env:"GRPC_PORT" envDefault:":8082"`
	CORSOrigin  string        `env:"CORS_ORIGIN" envDefault:"*"`
	ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
}

type LoggerConfig struct {
	Level             string `env:"LOGGER_LEVEL" envDefault:"debug"`
	Encoding          string `env:"LOGGER_ENCODING" envDefault:"console"`
	DisableCaller     bool   `env:"LOGGER_DISABLE_CALLER" envDefault:"false"`
	DisableStacktrace bool   `env:"LOGGER_DISABLE_STACKTRACE" envDefault:"true"`
}

type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER" envDefault:"postgres"` // postgres or sqlite
	SQLitePath string `env:"SQLITE_PATH" envDefault:"boutique.db"`
}

type PostgresConfig struct {
	Host            string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port            string `env:"POSTGRES_PORT" envDefault:"5432"`
	User            string `env:"POSTGRES_USER" envDefault:"boutique"`
	Password        string `env:"POSTGRES_PASSWORD" envDefault:"boutique"`
	DBName          string `env:"POSTGRES_DB" envDefault:"boutique_catalog"`
	SSLMode         string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	MaxOpenConns    int    `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int    `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime int    `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"300"`
	ConnMaxIdleTime int    `env:"POSTGRES_CONN_MAX_IDLE_TIME" envDefault:"60"`
}

// Optional backends are disabled while their address list is empty.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	ListTTL  time.Duration `env:"REDIS_LIST_TTL" envDefault:"5m"`
}

type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC_CATALOG" envDefault:"catalog.events"`
	GroupID string   `env:"KAFKA_GROUP_ID"`
}

type ElasticsearchConfig struct {
	Addresses []string `env:"ELASTICSEARCH_ADDRESSES" envSeparator:","`
	Username  string   `env:"ELASTICSEARCH_USERNAME"`
	Password  string   `env:"ELASTICSEARCH_PASSWORD"`
}

type StorageConfig struct {
	Driver        string `env:"STORAGE_DRIVER" envDefault:"local"` // minio or local
	Endpoint      string `env:"STORAGE_ENDPOINT"`
	AccessKey     string `env:"STORAGE_ACCESS_KEY"`
	SecretKey     string `env:"STORAGE_SECRET_KEY"`
	Region        string `env:"STORAGE_REGION"`
	UseSSL        bool   `env:"STORAGE_USE_SSL" envDefault:"true"`
	Bucket        string `env:"STORAGE_BUCKET" envDefault:"products"`
	PublicBaseURL string `env:"STORAGE_PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
	LocalDir      string `env:"STORAGE_LOCAL_DIR" envDefault:"./uploads"`
}

type AdminConfig struct {
	Email        string        `env:"ADMIN_EMAIL"`
	PasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	JWTSecret    string        `env:"JWT_SECRET_KEY" envDefault:"your-secret-key-change-this-in-prod"`
	TokenTTL     time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"12h"`
}

type CatalogConfig struct {
	ValidateCategory   bool          `env:"CATALOG_VALIDATE_CATEGORY" envDefault:"false"`
	SettingsTTL        time.Duration `env:"SETTINGS_CACHE_TTL" envDefault:"60s"`
	StorefrontPageSize int           `env:"STOREFRONT_PAGE_SIZE" envDefault:"12"`
	AdminPageSize      int           `env:"ADMIN_PAGE_SIZE" envDefault:"10"`
}

// LoadEnv reads the process environment. Call godotenv.Load first to pick up
// a local .env file.
func LoadEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "dev" || c.Server.AppEnv == "development"
}
