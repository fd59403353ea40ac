package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	Environment     string
	LogLevel        string
	LogEncoding     string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	ReportCacheTTL  time.Duration
	SwaggerHost     string
	ShutdownTimeout time.Duration
	SeedAPIURL      string
	Scheduler       SchedulerConfig
}

// SchedulerConfig controls the periodic report jobs.
type SchedulerConfig struct {
	Enabled  bool
	DailyAt  string
	WeeklyAt string
	Timezone string
}

// Load builds Config from .env (when present) and the environment with sensible defaults.
func Load() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", getEnv("PORT", "3000")),
		Environment:     getEnv("APP_ENV", getEnv("NODE_ENV", "development")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogEncoding:     getEnv("LOG_ENCODING", "json"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		ReportCacheTTL:  getEnvDuration("REPORT_CACHE_TTL", 5*time.Minute),
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		SeedAPIURL:      getEnv("SEED_API_URL", "http://localhost:3000/api"),
		Scheduler: SchedulerConfig{
			Enabled:  getEnvBool("REPORT_SCHEDULE_ENABLED", false),
			DailyAt:  getEnv("REPORT_DAILY_AT", "00:05"),
			WeeklyAt: getEnv("REPORT_WEEKLY_AT", "00:10"),
			Timezone: getEnv("REPORT_TIMEZONE", "Local"),
		},
	}
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(v); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}
