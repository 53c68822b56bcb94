package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every environment variable consumed by the service.
const EnvPrefix = "BRANDHUB"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	GCS           GCSConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BRANDHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"BRANDHUB_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BRANDHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BRANDHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BRANDHUB_DB_DSN"`
	Driver string `envconfig:"BRANDHUB_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"BRANDHUB_DB_HOST"`
	Port     int    `envconfig:"BRANDHUB_DB_PORT" default:"5432"`
	User     string `envconfig:"BRANDHUB_DB_USER"`
	Password string `envconfig:"BRANDHUB_DB_PASSWORD"`
	Name     string `envconfig:"BRANDHUB_DB_NAME"`
	SSLMode  string `envconfig:"BRANDHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BRANDHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BRANDHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BRANDHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BRANDHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either BRANDHUB_DB_DSN or host/user/name parts must be set")
	}
	d.DSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"BRANDHUB_REDIS_URL"`
	Address      string        `envconfig:"BRANDHUB_REDIS_ADDR"`
	Password     string        `envconfig:"BRANDHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"BRANDHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BRANDHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BRANDHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BRANDHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BRANDHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BRANDHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"BRANDHUB_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"BRANDHUB_JWT_ISSUER" default:"brandhub"`
	ExpirationMinutes      int    `envconfig:"BRANDHUB_JWT_EXPIRATION_MINUTES" default:"30"`
	RefreshTokenTTLMinutes int    `envconfig:"BRANDHUB_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BRANDHUB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BRANDHUB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BRANDHUB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BRANDHUB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BRANDHUB_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"BRANDHUB_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"BRANDHUB_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"BRANDHUB_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"BRANDHUB_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"BRANDHUB_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"BRANDHUB_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BRANDHUB_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"BRANDHUB_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"BRANDHUB_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"BRANDHUB_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"BRANDHUB_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName       string        `envconfig:"BRANDHUB_GCS_BUCKET"`
	UploadURLExpiry  time.Duration `envconfig:"BRANDHUB_GCS_UPLOAD_URL_EXPIRY" default:"15m"`
	PublicURLPattern string        `envconfig:"BRANDHUB_GCS_PUBLIC_URL_PATTERN" default:"https://storage.googleapis.com/%s/%s"`
}

type PubSubConfig struct {
	EventsTopic string `envconfig:"BRANDHUB_PUBSUB_EVENTS_TOPIC"`
}

type OutboxConfig struct {
	BatchSize    int           `envconfig:"BRANDHUB_OUTBOX_BATCH_SIZE" default:"50"`
	PollInterval time.Duration `envconfig:"BRANDHUB_OUTBOX_POLL_INTERVAL" default:"5s"`
	MaxAttempts  int           `envconfig:"BRANDHUB_OUTBOX_MAX_ATTEMPTS" default:"10"`
}
