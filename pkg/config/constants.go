package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "PAKETSHOP"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "PAKETSHOP_APP_ENV"
	EnvPort   = "PAKETSHOP_APP_PORT"
	EnvDBDSN  = "PAKETSHOP_DB_DSN"
	EnvDBHost = "PAKETSHOP_DB_HOST"
	EnvDBUser = "PAKETSHOP_DB_USER"
	EnvDBName = "PAKETSHOP_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
