package config

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Paystack PaystackConfig
	Termii   TermiiConfig
	Resend   ResendConfig
	Billing  BillingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// PaystackConfig holds payment gateway credentials. SecretKey authorizes
// API calls and is also the HMAC key for webhook signatures.
type PaystackConfig struct {
	BaseURL     string
	SecretKey   string
	CallbackURL string
}

// TermiiConfig holds SMS provider credentials
type TermiiConfig struct {
	BaseURL string
	ApiKey  string
	Channel string
}

// ResendConfig holds transactional email credentials. An empty ApiKey
// disables email notifications.
type ResendConfig struct {
	BaseURL string
	ApiKey  string
	From    string
}

// BillingConfig holds pricing for the SMS product
type BillingConfig struct {
	UnitCost        decimal.Decimal
	Currency        string
	DefaultSenderID string
	SendConcurrency int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "jadara"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Paystack: PaystackConfig{
			BaseURL:     getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
			SecretKey:   getEnv("PAYSTACK_SECRET_KEY", ""),
			CallbackURL: getEnv("PAYSTACK_CALLBACK_URL", ""),
		},
		Termii: TermiiConfig{
			BaseURL: getEnv("TERMII_BASE_URL", "https://api.ng.termii.com"),
			ApiKey:  getEnv("TERMII_API_KEY", ""),
			Channel: getEnv("TERMII_CHANNEL", "generic"),
		},
		Resend: ResendConfig{
			BaseURL: getEnv("RESEND_BASE_URL", "https://api.resend.com"),
			ApiKey:  getEnv("RESEND_API_KEY", ""),
			From:    getEnv("RESEND_FROM", "Wallet Notifications <onboarding@resend.dev>"),
		},
		Billing: BillingConfig{
			UnitCost:        getEnvAsDecimal("SMS_UNIT_COST", "5"),
			Currency:        getEnv("WALLET_CURRENCY", "NGN"),
			DefaultSenderID: getEnv("SMS_DEFAULT_SENDER_ID", "NotifyMe"),
			SendConcurrency: getEnvAsInt("SMS_SEND_CONCURRENCY", 5),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsDecimal(key, defaultValue string) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	d, _ := decimal.NewFromString(defaultValue)
	return d
}
