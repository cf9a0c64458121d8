package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// S3/Storage configuration
	S3Endpoint             string
	S3Region               string
	AWSAccessKeyID         string
	AWSSecretAccessKey     string
	DocumentsBucket        string
	DocumentMaxSizeMB      int64
	DocumentURLLifetimeMin int

	// YDB configuration
	YDBEndpoint         string
	YDBDatabasePath     string
	YDBAutoCreateTables int

	// Redis configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Telegram configuration
	TelegramBotToken    string
	TelegramAdminChatID string

	// JWT / session configuration
	JWTSecretKey        string
	AccessTokenTTL      time.Duration
	RefreshTokenTTL     time.Duration
	SessionMaxTTL       time.Duration
	SessionCookieSecure bool

	// TrustProxyHeaders включает X-Forwarded-For; только за собственным прокси
	TrustProxyHeaders bool

	// Login rate limiting
	LoginMaxAttempts   int
	LoginWindowSeconds int

	// Email/SES configuration
	SESEndpoint        string
	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string
	EmailFrom          string
	AppLoginURL        string

	// Content configuration
	ContentCatalogPath string

	// HTTP configuration
	HTTPPort           string
	CORSAllowedOrigins []string
	APIBaseURL         string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// S3/Storage configuration
	s3Endpoint := getEnv("TH_S3_ENDPOINT", "https://storage.yandexcloud.net")
	// An env var set to "" overrides the default, fall back explicitly.
	if s3Endpoint == "" {
		s3Endpoint = "https://storage.yandexcloud.net"
	}
	if !strings.HasPrefix(s3Endpoint, "http://") && !strings.HasPrefix(s3Endpoint, "https://") {
		s3Endpoint = "https://" + s3Endpoint
		log.Printf("WARN: TH_S3_ENDPOINT was missing a protocol scheme. Prepending 'https://'. New endpoint: %s", s3Endpoint)
	}

	return &Config{
		S3Endpoint:             s3Endpoint,
		S3Region:               getEnv("TH_S3_REGION", "ru-central1"),
		AWSAccessKeyID:         getEnv("TH_SA_KEY_ID", ""),
		AWSSecretAccessKey:     getEnv("TH_SA_KEY", ""),
		DocumentsBucket:        getEnv("TH_DOCUMENTS_BUCKET", "tierhub-documents"),
		DocumentMaxSizeMB:      int64(getEnvInt("TH_DOCUMENT_MAX_SIZE_MB", 10, 1, 100)),
		DocumentURLLifetimeMin: getEnvInt("TH_DOCUMENT_URL_LIFETIME_MIN", 15, 1, 60),

		// YDB configuration
		YDBEndpoint:         getEnv("TH_YDB_ENDPOINT", ""),
		YDBDatabasePath:     getEnv("TH_YDB_DATABASE_PATH", ""),
		YDBAutoCreateTables: getEnvInt("TH_YDB_AUTO_CREATE_TABLES", 0, 0, 1),

		// Redis configuration
		RedisAddr:     getEnvOptional("TH_REDIS_ADDR"),
		RedisPassword: getEnvOptional("TH_REDIS_PASSWORD"),
		RedisDB:       getEnvInt("TH_REDIS_DB", 0, 0, 15),

		// Telegram configuration
		TelegramBotToken:    getEnvOptional("TELEGRAM_BOT_TOKEN"),
		TelegramAdminChatID: getEnvOptional("TELEGRAM_CHAT_ID"),

		// JWT configuration
		JWTSecretKey:        getEnv("TH_JWT_SECRET_KEY", ""),
		AccessTokenTTL:      time.Duration(getEnvInt("TH_ACCESS_TOKEN_TTL_HOURS", 24, 1, 720)) * time.Hour,
		RefreshTokenTTL:     time.Duration(getEnvInt("TH_REFRESH_TOKEN_TTL_HOURS", 24*7, 1, 24*90)) * time.Hour,
		SessionMaxTTL:       time.Duration(getEnvInt("TH_SESSION_MAX_TTL_HOURS", 24*30, 1, 24*365)) * time.Hour,
		SessionCookieSecure: getEnvAsBool("TH_SESSION_COOKIE_SECURE", true),
		TrustProxyHeaders:   getEnvAsBool("TH_TRUST_PROXY_HEADERS", false),

		LoginMaxAttempts:   getEnvInt("TH_LOGIN_MAX_ATTEMPTS", 5, 1, 100),
		LoginWindowSeconds: getEnvInt("TH_LOGIN_WINDOW_SECONDS", 900, 10, 86400),

		// Email/SES configuration
		SESEndpoint:        getEnvOptional("TH_SES_ENDPOINT"),
		SESRegion:          getEnv("TH_SES_REGION", "ru-central1"),
		SESAccessKeyID:     getEnvOptional("TH_SES_ACCESS_KEY_ID"),
		SESSecretAccessKey: getEnvOptional("TH_SES_SECRET_ACCESS_KEY"),
		EmailFrom:          getEnvOptional("TH_EMAIL_FROM"),
		AppLoginURL:        getEnv("TH_APP_LOGIN_URL", "https://tierhub.app/login"),

		ContentCatalogPath: getEnv("TH_CONTENT_CATALOG_PATH", "content/catalog.yaml"),

		// HTTP configuration
		HTTPPort:           getEnv("TH_HTTP_PORT", "8080"),
		CORSAllowedOrigins: splitList(getEnv("TH_CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		APIBaseURL:         getEnv("TH_API_BASE_URL", "https://api.tierhub.app"),
	}
}

// getEnv returns the variable or the fallback; an empty fallback marks the variable as mandatory.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	if fallback == "" {
		log.Fatalf("FATAL: Environment variable %s is not set.", key)
	}
	return fallback
}

func getEnvOptional(key string) string {
	return os.Getenv(key)
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, fallback, min, max int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			if n < min {
				return min
			}
			if n > max {
				return max
			}
			return n
		}
		log.Printf("WARN: %s=%q is not an integer, using default %d", key, v, fallback)
	}

	if fallback < min {
		return min
	}
	if fallback > max {
		return max
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
