package utils

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings resolved once at startup
type Config struct {
	Env          string
	Port         string
	PublicOrigin string
	LogLevel     string

	StripeSecretKey     string
	StripeWebhookSecret string
	StripeAPIURL        string
	CheckoutCurrency    string
	CheckoutTimeout     time.Duration

	MongoURI      string
	MongoDatabase string
	CatalogSource string

	RedisAddr     string
	RedisPassword string
	LedgerTTL     time.Duration

	IdentitySecret string

	PostmarkToken  string
	SendGridAPIKey string
	EmailSender    string

	ShutdownTimeout time.Duration
}

// LoadConfig reads .env when present and then the environment.
// The returned bool reports whether a .env file was loaded.
func LoadConfig() (*Config, bool) {
	loaded := godotenv.Load() == nil

	return &Config{
		Env:          getEnv("APP_ENV", "production"),
		Port:         getEnv("PORT", "8000"),
		PublicOrigin: strings.TrimRight(getEnv("PUBLIC_ORIGIN", "http://localhost:3000"), "/"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeAPIURL:        os.Getenv("STRIPE_API_URL"),
		CheckoutCurrency:    strings.ToLower(getEnv("CHECKOUT_CURRENCY", "usd")),
		CheckoutTimeout:     getDuration("CHECKOUT_TIMEOUT", 10*time.Second),

		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getEnv("MONGO_DB_NAME", "fl350"),
		CatalogSource: strings.ToLower(getEnv("CATALOG_SOURCE", "static")),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		LedgerTTL:     getDuration("LEDGER_TTL", 72*time.Hour),

		IdentitySecret: os.Getenv("IDENTITY_JWT_SECRET"),

		PostmarkToken:  os.Getenv("POSTMARK_SERVER_TOKEN"),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailSender:    getEnv("EMAIL_SENDER", "dispatch@fl350.example"),

		ShutdownTimeout: 10 * time.Second,
	}, loaded
}

// IsDevelopment reports whether the process runs outside production
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
