package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SEACATERING_APP_ENV" required:"true"`
	Port         string `envconfig:"SEACATERING_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SEACATERING_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SEACATERING_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"SEACATERING_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"SEACATERING_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SEACATERING_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SEACATERING_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SEACATERING_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	ReadyAttempts   int           `envconfig:"SEACATERING_DB_READY_ATTEMPTS" default:"5"`
	ReadyBaseDelay  time.Duration `envconfig:"SEACATERING_DB_READY_BASE_DELAY" default:"250ms"`
	ReadyMaxElapsed time.Duration `envconfig:"SEACATERING_DB_READY_MAX_ELAPSED" default:"15s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SEACATERING_REDIS_URL"`
	Address      string        `envconfig:"SEACATERING_REDIS_ADDR"`
	Password     string        `envconfig:"SEACATERING_REDIS_PASSWORD"`
	DB           int           `envconfig:"SEACATERING_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SEACATERING_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SEACATERING_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SEACATERING_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SEACATERING_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SEACATERING_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SEACATERING_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SEACATERING_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SEACATERING_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SEACATERING_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SEACATERING_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SEACATERING_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SEACATERING_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SEACATERING_ARGON_KEY_LEN" default:"32"`
}

type RateLimitConfig struct {
	AuthWindow       time.Duration `envconfig:"SEACATERING_RATE_LIMIT_AUTH_WINDOW" default:"1m"`
	AuthIPLimit      int           `envconfig:"SEACATERING_RATE_LIMIT_AUTH_IP_LIMIT" default:"10"`
	IntakeWindow     time.Duration `envconfig:"SEACATERING_RATE_LIMIT_INTAKE_WINDOW" default:"1m"`
	IntakeIPLimit    int           `envconfig:"SEACATERING_RATE_LIMIT_INTAKE_IP_LIMIT" default:"30"`
	TestimonyWindow  time.Duration `envconfig:"SEACATERING_RATE_LIMIT_TESTIMONY_WINDOW" default:"5m"`
	TestimonyIPLimit int           `envconfig:"SEACATERING_RATE_LIMIT_TESTIMONY_IP_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SEACATERING_AUTO_MIGRATE" default:"false"`
}
