package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Commerce CommerceConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Cart     CartConfig
	Shipping ShippingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TEOHOME_APP_ENV" required:"true"`
	Port         string `envconfig:"TEOHOME_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TEOHOME_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TEOHOME_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CommerceConfig points at the upstream WooCommerce REST API. When the
// consumer key is empty or still the documentation placeholder the service
// runs on bundled fixture data instead.
type CommerceConfig struct {
	APIURL         string        `envconfig:"TEOHOME_COMMERCE_API_URL"`
	ConsumerKey    string        `envconfig:"TEOHOME_COMMERCE_CONSUMER_KEY"`
	ConsumerSecret string        `envconfig:"TEOHOME_COMMERCE_CONSUMER_SECRET"`
	Timeout        time.Duration `envconfig:"TEOHOME_COMMERCE_TIMEOUT" default:"10s"`
}

const placeholderConsumerKey = "ck_your_consumer_key_here"

// LiveCredentials reports whether real API credentials are configured.
func (c CommerceConfig) LiveCredentials() bool {
	key := strings.TrimSpace(c.ConsumerKey)
	return key != "" && key != placeholderConsumerKey && strings.TrimSpace(c.APIURL) != ""
}

type RedisConfig struct {
	URL          string        `envconfig:"TEOHOME_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TEOHOME_REDIS_ADDR"`
	Password     string        `envconfig:"TEOHOME_REDIS_PASSWORD"`
	DB           int           `envconfig:"TEOHOME_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TEOHOME_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TEOHOME_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TEOHOME_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TEOHOME_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TEOHOME_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"TEOHOME_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type CartConfig struct {
	SnapshotTTL time.Duration `envconfig:"TEOHOME_CART_SNAPSHOT_TTL" default:"720h"`
	MaxQuantity int           `envconfig:"TEOHOME_CART_MAX_QUANTITY" default:"99"`
}

// ShippingConfig holds the flat-rate shipping rule: one fixed cost, waived
// once the cart subtotal reaches the threshold.
type ShippingConfig struct {
	FlatRate      string `envconfig:"TEOHOME_SHIPPING_FLAT_RATE" default:"49"`
	FreeThreshold string `envconfig:"TEOHOME_SHIPPING_FREE_THRESHOLD" default:"500"`
}
