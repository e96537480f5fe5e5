package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	FaceAPI  FaceAPIConfig
	SMS       SMSConfig
	Matching  MatchingConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
	// Public base URL used when rendering join links and QR codes
	BaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	// Token lifetime, 7 days by default
	Expiry time.Duration
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// Public URL prefix for serving uploaded objects
	PublicURL string
}

type FaceAPIConfig struct {
	BaseURL string // Base URL of the face detection service
	Enabled bool   // Enable/disable server-side face detection
}

type SMSConfig struct {
	APIURL   string
	APIKey   string
	SenderID string
	// In dev mode OTPs are returned in the response instead of sent
	DevMode bool
}

type RateLimitConfig struct {
	Enabled       bool
	MaxRequests   int
	WindowSeconds int
	// Stricter budget for OTP endpoints
	AuthMaxRequests   int
	AuthWindowSeconds int
}

type MatchingConfig struct {
	// Euclidean distance below which two descriptors count as the
	// same person
	Threshold float64
	// How long terminal pipeline entries stay visible
	TrackerRetention time.Duration
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists (optional for production)
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	jwtExpiryHours, _ := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "168"))
	threshold, _ := strconv.ParseFloat(getEnv("MATCH_THRESHOLD", "0.5"), 64)
	retentionMin, _ := strconv.Atoi(getEnv("TRACKER_RETENTION_MINUTES", "5"))
	maxRequests, _ := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "100"))
	windowSeconds, _ := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))
	authMaxRequests, _ := strconv.Atoi(getEnv("RATE_LIMIT_AUTH_MAX", "5"))
	authWindowSeconds, _ := strconv.Atoi(getEnv("RATE_LIMIT_AUTH_WINDOW_SECONDS", "60"))

	config := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "Event System"),
			Port:    getEnv("APP_PORT", "3000"),
			Env:     getEnv("APP_ENV", "development"),
			BaseURL: getEnv("APP_BASE_URL", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "event_system"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
			Expiry: time.Duration(jwtExpiryHours) * time.Hour,
		},
		Storage: StorageConfig{
			Endpoint:  getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:    getEnv("STORAGE_BUCKET", "event-photos"),
			UseSSL:    getEnv("STORAGE_USE_SSL", "false") == "true",
			PublicURL: getEnv("STORAGE_PUBLIC_URL", "http://localhost:9000/event-photos"),
		},
		FaceAPI: FaceAPIConfig{
			BaseURL: getEnv("FACE_API_URL", "http://localhost:5000"),
			Enabled: getEnv("FACE_API_ENABLED", "true") == "true",
		},
		SMS: SMSConfig{
			APIURL:   getEnv("SMS_API_URL", ""),
			APIKey:   getEnv("SMS_API_KEY", ""),
			SenderID: getEnv("SMS_SENDER_ID", "EVNTSY"),
			DevMode:  getEnv("SMS_DEV_MODE", "true") == "true",
		},
		Matching: MatchingConfig{
			Threshold:        threshold,
			TrackerRetention: time.Duration(retentionMin) * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled:           getEnv("RATE_LIMIT_ENABLED", "true") == "true",
			MaxRequests:       maxRequests,
			WindowSeconds:     windowSeconds,
			AuthMaxRequests:   authMaxRequests,
			AuthWindowSeconds: authWindowSeconds,
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
