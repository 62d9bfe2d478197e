package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	JWTSecret       string
	DefaultPassword string

	ContentAPIURL string
	NotesAPIURL   string
	WebhookURL    string
	RedisAddr     string

	MailHost     string
	MailPort     string
	MailUsername string
	MailPassword string

	ClientUrl string
	ApiPort   string
)

// LoadConfig reads the .env file if present and populates the package variables
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	PostgresHost = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort = getEnv("POSTGRES_PORT", "5432")
	PostgresUser = getEnv("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "postgres")
	PostgresDB = getEnv("POSTGRES_DB", "judgeapi")

	JWTSecret = getEnv("JWT_SECRET", "change-me")
	DefaultPassword = getEnv("DEFAULT_PASSWORD", "")

	ContentAPIURL = getEnv("CONTENT_API_URL", "")
	NotesAPIURL = getEnv("NOTES_API_URL", "")
	WebhookURL = getEnv("WEBHOOK_URL", "")
	RedisAddr = getEnv("REDIS_ADDR", "")

	MailHost = getEnv("MAIL_HOST", "")
	MailPort = getEnv("MAIL_PORT", "587")
	MailUsername = getEnv("MAIL_USERNAME", "")
	MailPassword = getEnv("MAIL_PASSWORD", "")

	ClientUrl = getEnv("CLIENT_URL", "http://localhost:3000")
	ApiPort = getEnv("API_PORT", "8080")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
