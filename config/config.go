package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// Config returns the raw value of an environment variable, reading .env the first time.
func Config(key string) string {
	loadOnce.Do(func() {
		_ = godotenv.Load(".env")
	})
	return os.Getenv(key)
}

type Settings struct {
	AppEnv   string
	HTTPPort string

	DBDriver   string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	JWTSecret      string
	AccessTokenTTL time.Duration

	RedisAddr     string
	RedisPassword string

	KafkaBroker      string
	OrderEventsTopic string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	PublicAppURL       string
	DefaultTaxRate     float64
	DefaultDeliveryFee float64

	LogLevel    string
	LogJSON     bool
	CORSOrigins string
}

// Load builds the typed settings from the environment.
func Load() Settings {
	return Settings{
		AppEnv:   getString("APP_ENV", "development"),
		HTTPPort: getString("PORT", "8002"),

		DBDriver:   getString("DB_DRIVER", "postgres"),
		DBHost:     getString("DB_HOST", "localhost"),
		DBPort:     getInt("DB_PORT", 5432),
		DBUser:     getString("DB_USER", "postgres"),
		DBPassword: Config("DB_PASSWORD"),
		DBName:     getString("DB_NAME", "restaurant_manager"),
		DBSSLMode:  getString("DB_SSLMODE", "disable"),
		DBPath:     getString("DB_PATH", "restaurant_manager.db"),

		JWTSecret:      Config("JWT_SECRET"),
		AccessTokenTTL: getDuration("JWT_ACCESS_TTL", 24*time.Hour),

		RedisAddr:     Config("REDIS_ADDR"),
		RedisPassword: Config("REDIS_PASSWORD"),

		KafkaBroker:      Config("KAFKA_BROKER"),
		OrderEventsTopic: getString("ORDER_EVENTS_TOPIC", "restaurant.order-events"),

		SMTPHost:     Config("SMTP_HOST"),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUser:     Config("SMTP_USERNAME"),
		SMTPPassword: Config("SMTP_PASSWORD"),
		SMTPFrom:     Config("SMTP_FROM"),

		CloudinaryCloudName: Config("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    Config("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: Config("CLOUDINARY_API_SECRET"),

		PublicAppURL:       strings.TrimRight(getString("PUBLIC_APP_URL", "http://localhost:5173"), "/"),
		DefaultTaxRate:     getFloat("DEFAULT_TAX_RATE", 0.10),
		DefaultDeliveryFee: getFloat("DEFAULT_DELIVERY_FEE", 5.99),

		LogLevel:    getString("LOG_LEVEL", "info"),
		LogJSON:     getBool("LOG_JSON", false),
		CORSOrigins: getString("CORS_ORIGINS", "http://localhost:5173"),
	}
}

func (s Settings) IsDevelopment() bool {
	return s.AppEnv == "development"
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set outside development")

// Validate rejects settings the server must not start with.
func (s Settings) Validate() error {
	if s.JWTSecret == "" && !s.IsDevelopment() {
		return ErrMissingJWTSecret
	}
	return nil
}

func (s Settings) SMTPEnabled() bool {
	return s.SMTPHost != "" && s.SMTPFrom != ""
}

func getString(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(Config(key))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(Config(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(Config(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(Config(key))
	if err != nil {
		return fallback
	}
	return v
}
