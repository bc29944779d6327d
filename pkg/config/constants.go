package config

// EnvPrefix is the envconfig prefix; individual fields carry explicit
// CAMPUS_-prefixed names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "CAMPUS_APP_ENV"
	EnvPort       = "CAMPUS_APP_PORT"
	EnvDBDSN      = "CAMPUS_DB_DSN"
	EnvDBHost     = "CAMPUS_DB_HOST"
	EnvDBUser     = "CAMPUS_DB_USER"
	EnvDBName     = "CAMPUS_DB_NAME"
	EnvRedisURL   = "CAMPUS_REDIS_URL"
	EnvJWTSecret  = "CAMPUS_JWT_SECRET"
	EnvJWTIssuer  = "CAMPUS_JWT_ISSUER"
	EnvJWTExpMins = "CAMPUS_JWT_EXPIRATION_MINUTES"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
