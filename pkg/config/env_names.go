package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "MERCATUS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "MERCATUS_APP_ENV"
	EnvPort       = "MERCATUS_APP_PORT"
	EnvDBDSN      = "MERCATUS_DB_DSN"
	EnvDBHost     = "MERCATUS_DB_HOST"
	EnvDBUser     = "MERCATUS_DB_USER"
	EnvDBName     = "MERCATUS_DB_NAME"
	EnvRedisURL   = "MERCATUS_REDIS_URL"
	EnvJWTSecret  = "MERCATUS_JWT_SECRET"
	EnvJWTIssuer  = "MERCATUS_JWT_ISSUER"
	EnvJWTExpMins = "MERCATUS_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
