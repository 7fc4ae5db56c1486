package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port             string
	Env              string
	HTTPWriteTimeout time.Duration

	// Database
	DatabaseURL   string
	MigrationsDir string

	// Redis
	RedisURL string

	// Identity
	AuthProvider            string
	FirebaseProjectID       string
	FirebaseCredentialsFile string
	AuthLocalSecret         string

	// Gemini AI
	GeminiAPIKey          string
	GeminiStructuredModel string
	GeminiTextModel       string
	GeminiConcurrentReqs  int
	GeminiTimeout         time.Duration

	// Google Classroom
	ClassroomConcurrency int

	// Study reminders
	ReminderInterval time.Duration
	ReminderLead     time.Duration

	// Frontend
	FrontendURL string
	StaticDir   string
}

const (
	AuthProviderFirebase = "firebase"
	AuthProviderLocal    = "local"
)

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                    getEnvOrDefault("PORT", "5000"),
		Env:                     getEnvOrDefault("ENV", "development"),
		HTTPWriteTimeout:        getEnvAsDurationOrDefault("HTTP_WRITE_TIMEOUT", 120*time.Second),
		DatabaseURL:             mustGetEnv("DATABASE_URL"),
		MigrationsDir:           getEnvOrDefault("MIGRATIONS_DIR", "migrations"),
		RedisURL:                mustGetEnv("REDIS_URL"),
		AuthProvider:            getEnvOrDefault("AUTH_PROVIDER", AuthProviderFirebase),
		FirebaseProjectID:       getEnvOrDefault("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsFile: getEnvOrDefault("FIREBASE_CREDENTIALS_FILE", ""),
		AuthLocalSecret:         getEnvOrDefault("AUTH_LOCAL_SECRET", ""),
		GeminiAPIKey:            mustGetEnv("GEMINI_API_KEY"),
		GeminiStructuredModel:   getEnvOrDefault("GEMINI_STRUCTURED_MODEL", "gemini-2.5-pro"),
		GeminiTextModel:         getEnvOrDefault("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
		GeminiConcurrentReqs:    getEnvAsIntOrDefault("GEMINI_CONCURRENT_REQUESTS", 5),
		GeminiTimeout:           getEnvAsDurationOrDefault("GEMINI_TIMEOUT", 90*time.Second),
		ClassroomConcurrency:    getEnvAsIntOrDefault("CLASSROOM_CONCURRENCY", 4),
		ReminderInterval:        getEnvAsDurationOrDefault("REMINDER_INTERVAL", 5*time.Minute),
		ReminderLead:            getEnvAsDurationOrDefault("REMINDER_LEAD", time.Hour),
		FrontendURL:             getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
		StaticDir:               getEnvOrDefault("STATIC_DIR", ""),
	}

	return cfg
}

// Validate checks the settings that depend on each other.
func (c *Config) Validate() error {
	switch c.AuthProvider {
	case AuthProviderFirebase:
		if c.FirebaseProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required when AUTH_PROVIDER=%s", AuthProviderFirebase)
		}
	case AuthProviderLocal:
		if len(c.AuthLocalSecret) < 32 {
			return fmt.Errorf("AUTH_LOCAL_SECRET must be at least 32 characters when AUTH_PROVIDER=%s", AuthProviderLocal)
		}
		if c.IsProduction() {
			return fmt.Errorf("AUTH_PROVIDER=%s is not allowed in production", AuthProviderLocal)
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}

	if c.GeminiConcurrentReqs <= 0 {
		return fmt.Errorf("GEMINI_CONCURRENT_REQUESTS must be positive")
	}
	if c.ClassroomConcurrency <= 0 {
		return fmt.Errorf("CLASSROOM_CONCURRENCY must be positive")
	}
	if c.ReminderInterval <= 0 || c.ReminderLead <= 0 {
		return fmt.Errorf("REMINDER_INTERVAL and REMINDER_LEAD must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
