package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable read by Load.
	EnvPrefix = "STOCKNOTE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "STOCKNOTE_DB_DSN"
	EnvDBHost = "STOCKNOTE_DB_HOST"
	EnvDBUser = "STOCKNOTE_DB_USER"
	EnvDBName = "STOCKNOTE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Demo         DemoConfig
	Entitlements EntitlementsConfig
	Reminders    RemindersConfig
	Display      DisplayConfig
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
	Env          string `envconfig:"STOCKNOTE_APP_ENV" required:"true"`
	Port         string `envconfig:"STOCKNOTE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOCKNOTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKNOTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOCKNOTE_DB_DSN"`
	Driver string `envconfig:"STOCKNOTE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOCKNOTE_DB_HOST"`
	LegacyPort     int    `envconfig:"STOCKNOTE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOCKNOTE_DB_USER"`
	LegacyPassword string `envconfig:"STOCKNOTE_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOCKNOTE_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOCKNOTE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOCKNOTE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOCKNOTE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKNOTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOCKNOTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOCKNOTE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOCKNOTE_REDIS_ADDR"`
	Password     string        `envconfig:"STOCKNOTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOCKNOTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOCKNOTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOCKNOTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOCKNOTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOCKNOTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOCKNOTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOCKNOTE_AUTO_MIGRATE" default:"false"`
}

type DemoConfig struct {
	// Enabled seeds the process with demo mode already on. The runtime flag
	// can still be toggled through the API.
	Enabled bool  `envconfig:"STOCKNOTE_DEMO_ENABLED" default:"false"`
	Seed    int64 `envconfig:"STOCKNOTE_DEMO_SEED" default:"0"`
}

type EntitlementsConfig struct {
	Premium            bool `envconfig:"STOCKNOTE_ENTITLEMENTS_PREMIUM" default:"false"`
	FreeTierStockLimit int  `envconfig:"STOCKNOTE_ENTITLEMENTS_FREE_STOCK_LIMIT" default:"25"`
}

type RemindersConfig struct {
	SweepInterval time.Duration `envconfig:"STOCKNOTE_REMINDER_SWEEP_INTERVAL" default:"1m"`
	SweepBatch    int           `envconfig:"STOCKNOTE_REMINDER_SWEEP_BATCH" default:"100"`
	LockTTL       time.Duration `envconfig:"STOCKNOTE_REMINDER_LOCK_TTL" default:"5m"`
}

type DisplayConfig struct {
	Currency string `envconfig:"STOCKNOTE_DISPLAY_CURRENCY" default:"USD"`
	Locale   string `envconfig:"STOCKNOTE_DISPLAY_LOCALE" default:"en"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
