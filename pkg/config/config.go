package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Idempotency  IdempotencyConfig
	Inventory    InventoryConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DBDriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TESTMART_APP_ENV" required:"true"`
	Port         string `envconfig:"TESTMART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TESTMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TESTMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// LogFormat pins JSON output in prod. Elsewhere it is empty and the logger
// falls back to LOG_FORMAT.
func (a AppConfig) LogFormat() string {
	if a.IsProd() {
		return LogFormatJSON
	}
	return ""
}

type DBConfig struct {
	DSN    string `envconfig:"TESTMART_DB_DSN"`
	Driver string `envconfig:"TESTMART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TESTMART_DB_HOST"`
	LegacyPort     int    `envconfig:"TESTMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TESTMART_DB_USER"`
	LegacyPassword string `envconfig:"TESTMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"TESTMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"TESTMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TESTMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TESTMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TESTMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TESTMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	// TxTimeout bounds every unit of work opened through db.Client.
	TxTimeout    time.Duration `envconfig:"TESTMART_DB_TX_TIMEOUT" default:"5s"`
	TxMaxRetries int           `envconfig:"TESTMART_DB_TX_MAX_RETRIES" default:"3"`
}

// IsSQLite reports whether the configured driver is the embedded SQLite engine.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

// Redis is optional: without a URL or address the idempotency layer is disabled.
type RedisConfig struct {
	URL          string        `envconfig:"TESTMART_REDIS_URL"`
	Address      string        `envconfig:"TESTMART_REDIS_ADDR"`
	Password     string        `envconfig:"TESTMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"TESTMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TESTMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TESTMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TESTMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TESTMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TESTMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether enough connection info was provided to dial Redis.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TESTMART_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TESTMART_AUTO_MIGRATE" default:"false"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"TESTMART_IDEMPOTENCY_TTL" default:"24h"`
}

type InventoryConfig struct {
	LowStockThreshold int `envconfig:"TESTMART_LOW_STOCK_THRESHOLD" default:"10"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = DefaultSQLiteDSN
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
