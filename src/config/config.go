package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port      string
	LogLevel  string
	JWTSecret string

	// Remote CSV snapshot the dashboard is built from.
	SourceCSVURL string
	FetchTimeout time.Duration

	// Shared static password guarding the dashboard.
	DashboardPassword string

	// Session lifetime: how long a fetched Dataset stays available before the
	// user has to log in (and re-fetch) again.
	SessionTTL             time.Duration
	SessionCleanupInterval time.Duration

	MaxSourceSizeBytes int64
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	jwtSecret := getEnv("JWT_SECRET", "your-very-secure-and-long-jwt-secret-key-for-hs256-minimum-32-bytes")
	if jwtSecret == "your-very-secure-and-long-jwt-secret-key-for-hs256-minimum-32-bytes" {
		log.Println("WARNING: Using default insecure JWT_SECRET. Set JWT_SECRET environment variable for production.")
	}

	dashboardPassword := getEnv("DASHBOARD_PASSWORD", "")
	if dashboardPassword == "" {
		log.Fatalf("FATAL: DASHBOARD_PASSWORD is required but not set in environment or .env file.")
	}

	sourceCSVURL := getEnv("SOURCE_CSV_URL", "")
	if sourceCSVURL == "" {
		log.Fatalf("FATAL: SOURCE_CSV_URL is required but not set in environment or .env file.")
	}

	fetchTimeout := getEnvAsDuration("FETCH_TIMEOUT", 60*time.Second)
	sessionTTL := getEnvAsDuration("SESSION_TTL", 2*time.Hour)
	sessionCleanup := getEnvAsDuration("SESSION_CLEANUP_INTERVAL", 30*time.Minute)

	maxSourceSizeStr := getEnv("MAX_SOURCE_SIZE_BYTES", "52428800")
	maxSourceSize, err := strconv.ParseInt(maxSourceSizeStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_SOURCE_SIZE_BYTES format '%s'. Using default 50MB. Error: %v", maxSourceSizeStr, err)
		maxSourceSize = 50 * 1024 * 1024
	}

	Cfg = &AppConfig{
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		JWTSecret: jwtSecret,

		SourceCSVURL: sourceCSVURL,
		FetchTimeout: fetchTimeout,

		DashboardPassword: dashboardPassword,

		SessionTTL:             sessionTTL,
		SessionCleanupInterval: sessionCleanup,

		MaxSourceSizeBytes: maxSourceSize,
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, SessionTTL=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.SessionTTL)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default", key)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
