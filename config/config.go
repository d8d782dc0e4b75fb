package config

import "os"

var (
	// Server
	Port           = getEnv("PORT", "8080")
	GinMode        = getEnv("GIN_MODE", "debug")
	AllowedOrigins = getEnv("ALLOWED_ORIGINS", "http://localhost:5173")

	// Postgres
	PostgresHost     = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort     = getEnv("POSTGRES_PORT", "5432")
	PostgresUser     = getEnv("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "postgres")
	PostgresDB       = getEnv("POSTGRES_DB", "ctf")

	// Redis
	RedisAddr     = getEnv("REDIS_ADDR", "localhost:6379")
	RedisPassword = getEnv("REDIS_PASSWORD", "")

	// Auth
	JWTSecret       = getEnv("JWT_SECRET", "change-me-in-production")
	DefaultPassword = getEnv("DEFAULT_ADMIN_PASSWORD", "")

	// Mail (optional; notifications are logged when unset)
	MailHost     = getEnv("MAIL_HOST", "")
	MailPort     = getEnv("MAIL_PORT", "587")
	MailUsername = getEnv("MAIL_USERNAME", "")
	MailPassword = getEnv("MAIL_PASSWORD", "")
	ClientURL    = getEnv("CLIENT_URL", "http://localhost:5173")

	// Seed demo users and challenges on first boot
	SeedDemo = getEnv("SEED_DEMO", "false")
)

// getEnv reads an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
