package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"takeout"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	KafkaBrokers              string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaOrderDispatchedTopic string `env:"KAFKA_ORDER_DISPATCHED_TOPIC" envDefault:"orders.dispatched"`

	StripeSecretKey     string `env:"STRIPE_SECRET_KEY,required"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET,required"`
	PaymentCurrency     string `env:"PAYMENT_CURRENCY" envDefault:"cny"`

	GeoBaseURL                string `env:"GEO_BASE_URL" envDefault:"https://api.map.baidu.com"`
	GeoAccessKey              string `env:"GEO_ACCESS_KEY,required"`
	ShopAddress               string `env:"SHOP_ADDRESS,required"`
	DeliveryMaxDistanceMeters int    `env:"DELIVERY_MAX_DISTANCE_METERS" envDefault:"5000"`

	PaymentTimeout  time.Duration `env:"PAYMENT_TIMEOUT" envDefault:"15m"`
	ReaperBatchSize int           `env:"REAPER_BATCH_SIZE" envDefault:"100"`
	ReaperLease     time.Duration `env:"REAPER_LEASE" envDefault:"30s"`
	JWTSecret       string        `env:"JWT_SECRET,required"`
	WSSendBuffer    int           `env:"WS_SEND_BUFFER" envDefault:"16"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadConfig reads an optional .env file and then the process environment,
// which wins over the file.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.PaymentTimeout <= 0 {
		return Config{}, fmt.Errorf("PAYMENT_TIMEOUT must be positive, got %s", cfg.PaymentTimeout)
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// EchoLogLevel maps LOG_LEVEL onto the level of echo's own logger.
func (c Config) EchoLogLevel() log.Lvl {
	switch c.SlogLevel() {
	case slog.LevelDebug:
		return log.DEBUG
	case slog.LevelWarn:
		return log.WARN
	case slog.LevelError:
		return log.ERROR
	default:
		return log.INFO
	}
}
