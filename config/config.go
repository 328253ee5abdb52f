package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	MongoURI    string
	MongoDBName string
	Port        string

	JWTSecret string
	TokenTTL  time.Duration

	AWSRegion     string
	AWSBucketName string

	SendGridAPIKey  string
	MailFromName    string
	MailFromAddress string

	RemoveBgAPIKey string
	RemoveBgURL    string

	SweepSchedule  string
	StaleAfterDays int

	CORSAllowedOrigin string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017/")
	MongoDBName = getEnv("MONGO_DB", "virtuwear")
	Port = getEnv("PORT", "8080")

	JWTSecret = os.Getenv("JWT_SECRET")
	TokenTTL = getDuration("TOKEN_TTL", time.Hour)

	AWSRegion = getEnv("AWS_REGION", "us-east-1")
	AWSBucketName = os.Getenv("AWS_S3_BUCKET")

	SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	MailFromName = getEnv("MAIL_FROM_NAME", "VirtuWear")
	MailFromAddress = getEnv("MAIL_FROM_ADDRESS", "no-reply@virtuwear.app")

	RemoveBgAPIKey = os.Getenv("REMOVEBG_API_KEY")
	RemoveBgURL = getEnv("REMOVEBG_URL", "https://api.remove.bg/v1.0/removebg")

	// Daily at midnight. The old every-minute schedule was a debug setting
	// and must not be the default.
	SweepSchedule = getEnv("SWEEP_SCHEDULE", "0 0 * * *")
	StaleAfterDays = getInt("STALE_AFTER_DAYS", 180)

	CORSAllowedOrigin = getEnv("CORS_ALLOWED_ORIGIN", "*")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}
