package config

const (
	EnvPrefix = "TESTMART"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	LogFormatJSON = "json"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	DefaultSQLiteDSN = "file:testmart.db?_foreign_keys=on"
)

const (
	EnvAppEnv   = "TESTMART_APP_ENV"
	EnvPort     = "TESTMART_APP_PORT"
	EnvLogLevel = "TESTMART_LOG_LEVEL"

	EnvDBDSN    = "TESTMART_DB_DSN"
	EnvDBDriver = "TESTMART_DB_DRIVER"
	EnvDBHost   = "TESTMART_DB_HOST"
	EnvDBUser   = "TESTMART_DB_USER"
	EnvDBName   = "TESTMART_DB_NAME"

	EnvDBTxTimeout = "TESTMART_DB_TX_TIMEOUT"
	EnvRedisURL    = "TESTMART_REDIS_URL"
	EnvUseSQLite   = "TESTMART_USE_SQLITE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
