package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Firebase project identity. The defaults are the placeholders shipped in
// the sample .env; IsPlaceholder tells the caller a real value is missing.
const (
	placeholderAPIKey        = "your_api_key_here"
	placeholderAuthDomain    = "your_auth_domain_here"
	placeholderProjectID     = "your_project_id_here"
	placeholderStorageBucket = "your_storage_bucket_here"
	placeholderSenderID      = "your_sender_id_here"
	placeholderAppID         = "your_app_id_here"
)

type Firebase struct {
	APIKey            string
	AuthDomain        string
	ProjectID         string
	StorageBucket     string
	MessagingSenderID string
	AppID             string
}

// Configured reports whether the identity and storage settings needed by the
// hosted backend are all set.
func (f Firebase) Configured() bool {
	return !IsPlaceholder(f.APIKey) && !IsPlaceholder(f.ProjectID) && !IsPlaceholder(f.StorageBucket)
}

type Config struct {
	Port     string
	AppName  string
	LogLevel string

	MongoURI             string
	MongoDatabase        string
	PropertiesCollection string
	InquiriesCollection  string
	UsersCollection      string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	JWTSecret string
	JWTExpiry time.Duration

	RabbitMQURL   string
	RabbitMQQueue string

	StorageDriver   string
	LocalStorageDir string
	PublicBaseURL   string

	CORSAllowedOrigins []string
	LoginRatePerMinute int

	AdminEmail    string
	AdminPassword string

	Firebase Firebase
}

// Load reads .env when present and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")
	return &Config{
		Port:     port,
		AppName:  getEnv("APP_NAME", "real-estate-mvp"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		MongoURI:             getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:        getEnv("MONGODB_DATABASE", "real_estate"),
		PropertiesCollection: getEnv("MONGODB_COLLECTION_PROPERTIES", "properties"),
		InquiriesCollection:  getEnv("MONGODB_COLLECTION_INQUIRIES", "inquiries"),
		UsersCollection:      getEnv("MONGODB_COLLECTION_USERS", "users"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,

		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		RabbitMQQueue: getEnv("RABBITMQ_QUEUE", "properties_queue"),

		StorageDriver:   getEnv("STORAGE_DRIVER", "local"),
		LocalStorageDir: getEnv("LOCAL_STORAGE_DIR", "./uploads"),
		PublicBaseURL:   strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:"+port), "/"),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LoginRatePerMinute: getEnvInt("LOGIN_RATE_PER_MINUTE", 10),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		Firebase: Firebase{
			APIKey:            getEnv("FIREBASE_API_KEY", placeholderAPIKey),
			AuthDomain:        getEnv("FIREBASE_AUTH_DOMAIN", placeholderAuthDomain),
			ProjectID:         getEnv("FIREBASE_PROJECT_ID", placeholderProjectID),
			StorageBucket:     getEnv("FIREBASE_STORAGE_BUCKET", placeholderStorageBucket),
			MessagingSenderID: getEnv("FIREBASE_MESSAGING_SENDER_ID", placeholderSenderID),
			AppID:             getEnv("FIREBASE_APP_ID", placeholderAppID),
		},
	}
}

func IsPlaceholder(v string) bool {
	switch v {
	case "", placeholderAPIKey, placeholderAuthDomain, placeholderProjectID,
		placeholderStorageBucket, placeholderSenderID, placeholderAppID:
		return true
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
