package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string
	Port     string

	MySQLDSN      string
	MigrationsDir string
	RedisAddr     string
	KafkaBrokers  []string

	JWTSecret string
	JWTTTL    time.Duration
}

func Load() Config {
	return Config{
		AppEnv:        getEnv("APP_ENV", "dev"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Port:          getEnv("APP_PORT", "8080"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:pass@tcp(mysql:3306)/trendystore?parseTime=true&multiStatements=true"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		KafkaBrokers:  getEnvList("KAFKA_BROKERS"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTTTL:        getEnvDuration("JWT_TTL", 24*time.Hour),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvList splits a comma-separated env value; unset means empty.
func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
