package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for unannotated additions.
const EnvPrefix = "DOEVIDA"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "DOEVIDA_APP_ENV"
	EnvPort       = "DOEVIDA_APP_PORT"
	EnvDBDSN      = "DOEVIDA_DB_DSN"
	EnvDBHost     = "DOEVIDA_DB_HOST"
	EnvDBUser     = "DOEVIDA_DB_USER"
	EnvDBName     = "DOEVIDA_DB_NAME"
	EnvRedisURL   = "DOEVIDA_REDIS_URL"
	EnvJWTSecret  = "DOEVIDA_JWT_SECRET"
	EnvJWTIssuer  = "DOEVIDA_JWT_ISSUER"
	EnvJWTExpMins = "DOEVIDA_JWT_EXPIRATION_MINUTES"

	EnvRefreshTokenTTLMinutes = "DOEVIDA_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
