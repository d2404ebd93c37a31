package config

import (
	"fmt"
	"os"
)

// Config holds all environment configuration.
type Config struct {
	AppEnv string
	Port   string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	JWTSecret string

	// Seed admin account, created at startup when both values are set.
	AdminEmail    string
	AdminPassword string

	// Audit event publishing; disabled when KafkaBrokers is empty.
	KafkaBrokers string
	AuditTopic   string
}

// getEnv returns the environment value or the default when unset.
func getEnv(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// LoadConfig reads the full configuration from the environment.
func LoadConfig() *Config {
	return &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "gogreen"),
		DBPass:        getEnv("DB_PASS", "password"),
		DBName:        getEnv("DB_NAME", "gogreendb"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		KafkaBrokers:  getEnv("KAFKA_BROKERS", ""),
		AuditTopic:    getEnv("AUDIT_TOPIC", "gogreen.audit"),
	}
}

// GetDSN builds the PostgreSQL connection URL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName,
	)
}
