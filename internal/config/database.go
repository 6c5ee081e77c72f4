package config

import (
	"time"

	"bookswap-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig builds the PostgreSQL pool configuration from
// environment variables.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	return &database.DBConfig{
		Host:     getEnv("PG_HOST", "localhost"),
		Port:     getEnvInt("PG_PORT", 5432),
		Username: getEnv("PG_USERNAME", "postgres"),
		Password: getEnv("PG_PASSWORD", "postgres"),
		DBName:   getEnv("PG_DBNAME", "bookswap"),

		MaxConns:          int32(getEnvInt("PG_MAX_CONNS", 25)),
		MinConns:          int32(getEnvInt("PG_MIN_CONNS", 5)),
		MaxConnLifetime:   getEnvDuration("PG_MAX_CONN_LIFETIME", time.Hour),
		MaxConnIdleTime:   getEnvDuration("PG_MAX_CONN_IDLE_TIME", 30*time.Minute),
		HealthCheckPeriod: getEnvDuration("PG_HEALTH_CHECK_PERIOD", time.Minute),

		MaxRetries:     getEnvInt("PG_MAX_RETRIES", 4),
		RetryDelay:     getEnvDuration("PG_RETRY_DELAY", time.Second),
		ConnectTimeout: getEnvDuration("PG_CONNECT_TIMEOUT", 10*time.Second),
	}, nil
}
