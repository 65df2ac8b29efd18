package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
	Admin     AdminConfig
	Cron      CronConfig
	Gemini    GeminiConfig
	YouTube   YouTubeConfig
	Site      SiteConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	DSN      string
	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

// AdminConfig carries the credentials the Basic-auth gate checks against.
// Username is fixed; only the password comes from the environment. The
// password may be supplied as a bcrypt hash (recognized by prefix).
type AdminConfig struct {
	Username string
	Password string
}

// CronConfig carries the shared bearer secret for scheduled triggers.
// An empty secret means every cron endpoint rejects (fail closed).
type CronConfig struct {
	Secret            string
	PostsPerDay       int
	HoursBetweenPosts int
	DryRun            bool
}

type GeminiConfig struct {
	APIKey          string
	Model           string
	Timeout         time.Duration
	Temperature     float32
	MaxOutputTokens int32
}

type YouTubeConfig struct {
	APIKey    string
	ChannelID string
	Timeout   time.Duration
}

type SiteConfig struct {
	BaseURL       string
	DefaultLocale string
	Author        string
}

// RateLimitConfig holds one bucket per rate-limited external budget plus the
// per-IP comment bucket.
type RateLimitConfig struct {
	Generation  BucketConfig
	VideoLookup BucketConfig
	Upload      BucketConfig
	Comment     BucketConfig
}

type BucketConfig struct {
	Interval    time.Duration
	MaxRequests int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:  getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:   getEnv("TLS_KEY_FILE", ""),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "quill_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getDurationEnv("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: getEnvRequired("ADMIN_PASSWORD"),
		},
		Cron: CronConfig{
			Secret:            getEnv("CRON_SECRET", ""),
			PostsPerDay:       getIntEnv("POSTS_PER_DAY", 5),
			HoursBetweenPosts: getIntEnv("HOURS_BETWEEN_POSTS", 2),
			DryRun:            getBoolEnv("DRY_RUN", false),
		},
		Gemini: GeminiConfig{
			APIKey:          getEnv("GEMINI_API_KEY", ""),
			Model:           getEnv("GEMINI_MODEL", "gemini-2.0-flash-exp"),
			Timeout:         getDurationEnv("GEMINI_TIMEOUT", 30*time.Second),
			Temperature:     0.8,
			MaxOutputTokens: 8192,
		},
		YouTube: YouTubeConfig{
			APIKey:    getEnv("YOUTUBE_API_KEY", ""),
			ChannelID: getEnv("YOUTUBE_CHANNEL_ID", ""),
			Timeout:   getDurationEnv("YOUTUBE_TIMEOUT", 15*time.Second),
		},
		Site: SiteConfig{
			BaseURL:       getEnvRequired("SITE_BASE_URL"),
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
			Author:        getEnv("SITE_AUTHOR", "Quill"),
		},
		RateLimit: RateLimitConfig{
			// Generation budget tracks the free-tier quota of the text provider.
			Generation: BucketConfig{
				Interval:    getDurationEnv("RATE_LIMIT_GENERATION_INTERVAL", time.Hour),
				MaxRequests: getIntEnv("RATE_LIMIT_GENERATION_MAX", 60),
			},
			// Video lookups burn ~100 quota units each against a daily budget.
			VideoLookup: BucketConfig{
				Interval:    getDurationEnv("RATE_LIMIT_VIDEO_INTERVAL", 24*time.Hour),
				MaxRequests: getIntEnv("RATE_LIMIT_VIDEO_MAX", 100),
			},
			Upload: BucketConfig{
				Interval:    getDurationEnv("RATE_LIMIT_UPLOAD_INTERVAL", time.Hour),
				MaxRequests: getIntEnv("RATE_LIMIT_UPLOAD_MAX", 100),
			},
			Comment: BucketConfig{
				Interval:    getDurationEnv("RATE_LIMIT_COMMENT_INTERVAL", time.Minute),
				MaxRequests: getIntEnv("RATE_LIMIT_COMMENT_MAX", 5),
			},
		},
	}

	// Build database DSN
	cfg.Database.DSN = fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("Required environment variable %s is not set", key))
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
