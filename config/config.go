package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	MongoURI           string
	DBName             string
	Port               string
	JWTSecret          string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	GeminiAPIKey       string
	VisionModel        string
	ImageModel         string
	AWSRegion          string
	AWSBucketName      string
	PresignTTL         time.Duration
	RedisAddr          string
	RedisChannelPrefix string
	LocalStoreDir      string
	SendGridAPIKey     string
	MailFrom           string
	RateLimitPerMinute int
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017/")
	DBName = getEnv("DB_NAME", "glow")
	Port = getEnv("PORT", "8080")
	JWTSecret = os.Getenv("JWT_SECRET")

	GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	GoogleClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	GoogleRedirectURL = getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/google/callback")

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	VisionModel = getEnv("VISION_MODEL", "gemini-3-flash-preview")
	ImageModel = getEnv("IMAGE_MODEL", "gemini-2.5-flash-image")

	AWSRegion = getEnv("AWS_REGION", "us-east-1")
	AWSBucketName = getEnv("AWS_BUCKET_NAME", "user-uploads")
	PresignTTL = getEnvDuration("PRESIGN_TTL", time.Hour)

	RedisAddr = os.Getenv("REDIS_ADDR")
	RedisChannelPrefix = getEnv("REDIS_CHANNEL_PREFIX", "profiles")
	LocalStoreDir = getEnv("LOCAL_STORE_DIR", "local_store")

	SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	MailFrom = getEnv("MAIL_FROM", "no-reply@glowstudio.app")

	RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", 20)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
