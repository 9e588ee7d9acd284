package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type HTTPConfig struct {
	Port        string   `env:"PORT" envDefault:"5987"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

type MongoConfig struct {
	URI          string `env:"MONGODB_URI,required,notEmpty"`
	Database     string `env:"MONGO_DATABASE" envDefault:"goldenspoon"`
	Transactions bool   `env:"MONGO_TRANSACTIONS" envDefault:"false"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET_KEY,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

type RazorpayConfig struct {
	KeyID     string `env:"RAZORPAY_KEY_ID"`
	KeySecret string `env:"RAZORPAY_KEY_SECRET"`
	BaseURL   string `env:"RAZORPAY_BASE_URL" envDefault:"https://api.razorpay.com"`
	Currency  string `env:"PAYMENT_CURRENCY" envDefault:"INR"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	CacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"10m"`
}

type NotifyConfig struct {
	RabbitURL string `env:"RABBIT_URL"`
	Exchange  string `env:"NOTIFY_EXCHANGE" envDefault:"notifications"`
	EmailFrom string `env:"EMAIL_FROM"`
}

type Common struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"goldenspoon-api"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

type Config struct {
	Common   Common
	HTTP     HTTPConfig
	Mongo    MongoConfig
	Auth     AuthConfig
	Razorpay RazorpayConfig
	Redis    RedisConfig
	Notify   NotifyConfig
}

// Load reads an optional .env file, then the process environment.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
