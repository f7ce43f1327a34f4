package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Redis      RedisConfig
	Cloudinary CloudinaryConfig
	SMTP       SMTPConfig
	Referral   ReferralConfig
	Sweep      SweepConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Enabled toggles the cache layer; the API works without Redis.
	Enabled bool
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type ReferralConfig struct {
	// RatePercent of a referee's verified deposit credited to the referrer.
	RatePercent float64
}

type SweepConfig struct {
	Interval  time.Duration
	BatchSize int
}

func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Server: ServerConfig{
			Port:         envStr("APP_PORT", "8080"),
			Env:          envStr("APP_ENV", "development"),
			ReadTimeout:  envDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: envDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			DSN:             envStr("DB_DSN", "root:@tcp(localhost:3306)/coinvest?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: envDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			AccessSecret:  envStr("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: envStr("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  envDuration("JWT_ACCESS_EXPIRY", 8*time.Hour),
			RefreshExpiry: envDuration("JWT_REFRESH_EXPIRY", 168*time.Hour),
			Issuer:        envStr("JWT_ISSUER", "coinvest"),
		},
		Redis: RedisConfig{
			Addr:     envStr("REDIS_ADDR", "localhost:6379"),
			Password: envStr("REDIS_PASS", ""),
			DB:       envInt("REDIS_DB", 0),
			Enabled:  envStr("REDIS_ENABLED", "true") == "true",
		},
		Cloudinary: CloudinaryConfig{
			CloudName: envStr("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    envStr("CLOUDINARY_API_KEY", ""),
			APISecret: envStr("CLOUDINARY_API_SECRET", ""),
		},
		SMTP: SMTPConfig{
			Host:     envStr("SMTP_HOST", ""),
			Port:     envStr("SMTP_PORT", "587"),
			Username: envStr("SMTP_USERNAME", ""),
			Password: envStr("SMTP_PASSWORD", ""),
			From:     envStr("SMTP_FROM", "no-reply@coinvest.io"),
		},
		Referral: ReferralConfig{
			RatePercent: envFloat("REFERRAL_RATE_PERCENT", 7.0),
		},
		Sweep: SweepConfig{
			Interval:  envDuration("MATURITY_SWEEP_INTERVAL", time.Minute),
			BatchSize: envInt("MATURITY_SWEEP_BATCH", 200),
		},
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
