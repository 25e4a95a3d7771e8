package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

const insecureDefaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	StorageDriver string

	DatabaseURL        string
	EnableDBCheck      bool
	RunMigrations      bool
	MemorySnapshotPath string
	SeedOnStart        bool

	JWTSecret                  string
	JWTExpiryDuration          time.Duration
	JWTIssuer                  string
	RefreshTokenExpiryDuration time.Duration

	// External OAuth Providers
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	FrontendBaseURL    string

	CORSAllowedOrigins []string
	LoginRateLimit     string

	// Location is the zone whose calendar decides "today" for follow-ups.
	Location         *time.Location
	ReminderInterval time.Duration
	ReminderTimeout  time.Duration

	RedisURL          string
	DashboardCacheTTL time.Duration

	AMQPURL      string
	AMQPExchange string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPSender   string

	UploadDir      string
	MaxUploadBytes int64

	PosthogAPIKey   string
	PosthogEndpoint string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MEMORY_SNAPSHOT_PATH", "data/propease.json")
	v.SetDefault("SEED_ON_START", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "propease-crm")
	v.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("APP_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("REMINDER_INTERVAL", "15m")
	v.SetDefault("REMINDER_TIMEOUT", "30s")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("DASHBOARD_CACHE_TTL", "1m")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "propease.events")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_SENDER", "no-reply@propease.local")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		StorageDriver:      strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DatabaseURL:        v.GetString("PGSQL_URL"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:      v.GetBool("RUN_MIGRATIONS"),
		MemorySnapshotPath: v.GetString("MEMORY_SNAPSHOT_PATH"),
		SeedOnStart:        v.GetBool("SEED_ON_START"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
		FrontendBaseURL:    v.GetString("FRONTEND_BASE_URL"),
		LoginRateLimit:     v.GetString("LOGIN_RATE_LIMIT"),
		RedisURL:           v.GetString("REDIS_URL"),
		AMQPURL:            v.GetString("AMQP_URL"),
		AMQPExchange:       v.GetString("AMQP_EXCHANGE"),
		SMTPHost:           v.GetString("SMTP_HOST"),
		SMTPPort:           v.GetInt("SMTP_PORT"),
		SMTPUsername:       v.GetString("SMTP_USERNAME"),
		SMTPPassword:       v.GetString("SMTP_PASSWORD"),
		SMTPSender:         v.GetString("SMTP_SENDER"),
		UploadDir:          v.GetString("UPLOAD_DIR"),
		MaxUploadBytes:     v.GetInt64("MAX_UPLOAD_BYTES"),
		PosthogAPIKey:      v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:    v.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("PGSQL_URL must be set when STORAGE_DRIVER=postgres")
		}
	case StorageDriverMemory:
		if cfg.MemorySnapshotPath == "" {
			log.Println("Warning: MEMORY_SNAPSHOT_PATH not set. Data will not survive a restart.")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = insecureDefaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = durationOrDefault(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.RefreshTokenExpiryDuration = durationOrDefault(v, "REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour)
	cfg.ReminderInterval = durationOrDefault(v, "REMINDER_INTERVAL", 15*time.Minute)
	cfg.ReminderTimeout = durationOrDefault(v, "REMINDER_TIMEOUT", 30*time.Second)
	cfg.DashboardCacheTTL = durationOrDefault(v, "DASHBOARD_CACHE_TTL", time.Minute)

	tz := v.GetString("APP_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}
	if len(cfg.CORSAllowedOrigins) == 0 && cfg.FrontendBaseURL != "" {
		cfg.CORSAllowedOrigins = []string{cfg.FrontendBaseURL}
	}

	// Log warnings for missing critical OAuth ENV variables
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}
	if cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: GOOGLE_CLIENT_SECRET or GOOGLE_REDIRECT_URL not set. Google code exchange will not function.")
	}

	return cfg, nil
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}
