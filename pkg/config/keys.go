package config

const (
	EnvPrefix = "TEOHOME"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv   = "TEOHOME_APP_ENV"
	EnvPort     = "TEOHOME_APP_PORT"
	EnvRedisURL = "TEOHOME_REDIS_URL"

	EnvCommerceAPIURL         = "TEOHOME_COMMERCE_API_URL"
	EnvCommerceConsumerKey    = "TEOHOME_COMMERCE_CONSUMER_KEY"
	EnvCommerceConsumerSecret = "TEOHOME_COMMERCE_CONSUMER_SECRET"
)
