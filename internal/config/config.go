package config

import (
	"time"
)

// Config is the root configuration of the records service.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Storage   StorageConfig   `yaml:"storage"`
	Events    EventsConfig    `yaml:"events"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// AuthConfig holds token settings and the optional bootstrap administrator.
type AuthConfig struct {
	JWTSecret              string        `yaml:"jwt_secret"               env:"AUTH_JWT_SECRET"               env-required:"true"`
	JWTIssuer              string        `yaml:"jwt_issuer"               env:"AUTH_JWT_ISSUER"               env-default:"donorbase"`
	AccessTokenTTL         time.Duration `yaml:"access_token_ttl"         env:"AUTH_ACCESS_TOKEN_TTL"         env-default:"12h"`
	BootstrapAdminEmail    string        `yaml:"bootstrap_admin_email"    env:"AUTH_BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapAdminPassword string        `yaml:"bootstrap_admin_password" env:"AUTH_BOOTSTRAP_ADMIN_PASSWORD"`
	BootstrapAdminName     string        `yaml:"bootstrap_admin_name"     env:"AUTH_BOOTSTRAP_ADMIN_NAME"     env-default:"Administrator"`
}

// HasBootstrapAdmin reports whether an initial administrator is configured.
func (c AuthConfig) HasBootstrapAdmin() bool {
	return c.BootstrapAdminEmail != "" && c.BootstrapAdminPassword != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request limits. Zero disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"              env-default:"600"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// Storage drivers.
const (
	StorageDriverMinIO = "minio"
	StorageDriverS3    = "s3"
)

// StorageConfig selects and configures the document blob store.
type StorageConfig struct {
	Driver         string `yaml:"driver"           env:"STORAGE_DRIVER"           env-default:"minio"`
	Endpoint       string `yaml:"endpoint"         env:"STORAGE_ENDPOINT"`
	AccessKey      string `yaml:"access_key"       env:"STORAGE_ACCESS_KEY"`
	SecretKey      string `yaml:"secret_key"       env:"STORAGE_SECRET_KEY"`
	Bucket         string `yaml:"bucket"           env:"STORAGE_BUCKET"           env-default:"donor-documents"`
	Region         string `yaml:"region"           env:"STORAGE_REGION"           env-default:"us-east-1"`
	UseSSL         bool   `yaml:"use_ssl"          env:"STORAGE_USE_SSL"          env-default:"false"`
	PathStyle      bool   `yaml:"path_style"       env:"STORAGE_PATH_STYLE"       env-default:"true"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"STORAGE_MAX_UPLOAD_BYTES" env-default:"26214400"`
}

// EventsConfig configures the RabbitMQ publisher. An empty URL disables
// publishing.
type EventsConfig struct {
	RabbitMQURL string `yaml:"rabbitmq_url" env:"EVENTS_RABBITMQ_URL"`
	Exchange    string `yaml:"exchange"     env:"EVENTS_EXCHANGE"     env-default:"donorbase.events"`
}

// Enabled reports whether events should be published to a broker.
func (c EventsConfig) Enabled() bool {
	return c.RabbitMQURL != ""
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}
