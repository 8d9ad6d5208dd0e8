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
	Cart         CartConfig
	Checkout     CheckoutConfig
	Payment      PaymentConfig
	Telegram     TelegramConfig
	Pixel        PixelConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"PAKETSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"PAKETSHOP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PAKETSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PAKETSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PAKETSHOP_DB_DSN"`
	Driver string `envconfig:"PAKETSHOP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PAKETSHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"PAKETSHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PAKETSHOP_DB_USER"`
	LegacyPassword string `envconfig:"PAKETSHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"PAKETSHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"PAKETSHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PAKETSHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PAKETSHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PAKETSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PAKETSHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PAKETSHOP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PAKETSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"PAKETSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"PAKETSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PAKETSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PAKETSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PAKETSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PAKETSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PAKETSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CartConfig struct {
	SnapshotTTL time.Duration `envconfig:"PAKETSHOP_CART_SNAPSHOT_TTL" default:"720h"`
}

type CheckoutConfig struct {
	FlowTTL time.Duration `envconfig:"PAKETSHOP_CHECKOUT_FLOW_TTL" default:"1h"`
}

type PaymentConfig struct {
	ProviderURL        string        `envconfig:"PAKETSHOP_PAYMENT_PROVIDER_URL"`
	QRImageURL         string        `envconfig:"PAKETSHOP_PAYMENT_QR_IMAGE_URL" default:"/images/paynet-qr.jpg"`
	QRFallbackEndpoint string        `envconfig:"PAKETSHOP_PAYMENT_QR_FALLBACK_ENDPOINT" default:"https://api.qrserver.com/v1/create-qr-code/"`
	MobileRedirectWait time.Duration `envconfig:"PAKETSHOP_PAYMENT_MOBILE_REDIRECT_WAIT" default:"2s"`
	CashProcessingWait time.Duration `envconfig:"PAKETSHOP_PAYMENT_CASH_PROCESSING_WAIT" default:"1500ms"`
}

type TelegramConfig struct {
	BotToken string        `envconfig:"PAKETSHOP_TELEGRAM_BOT_TOKEN"`
	ChatID   string        `envconfig:"PAKETSHOP_TELEGRAM_CHAT_ID"`
	BaseURL  string        `envconfig:"PAKETSHOP_TELEGRAM_BASE_URL" default:"https://api.telegram.org"`
	Timeout  time.Duration `envconfig:"PAKETSHOP_TELEGRAM_TIMEOUT" default:"10s"`
}

// Enabled reports whether notification credentials are configured.
func (t TelegramConfig) Enabled() bool {
	return strings.TrimSpace(t.BotToken) != "" && strings.TrimSpace(t.ChatID) != ""
}

type PixelConfig struct {
	PixelID     string        `envconfig:"PAKETSHOP_PIXEL_ID"`
	AccessToken string        `envconfig:"PAKETSHOP_PIXEL_ACCESS_TOKEN"`
	Endpoint    string        `envconfig:"PAKETSHOP_PIXEL_ENDPOINT" default:"https://graph.facebook.com/v18.0"`
	Currency    string        `envconfig:"PAKETSHOP_PIXEL_CURRENCY" default:"UZS"`
	Timeout     time.Duration `envconfig:"PAKETSHOP_PIXEL_TIMEOUT" default:"5s"`
}

// Enabled reports whether server-side event delivery is configured.
func (p PixelConfig) Enabled() bool {
	return strings.TrimSpace(p.PixelID) != "" && strings.TrimSpace(p.AccessToken) != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PAKETSHOP_AUTO_MIGRATE" default:"false"`
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
