package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Database configuration (local booking mirror)
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// External collaborators
	Collaborators CollaboratorConfig

	// Webhook dispatcher
	Webhooks WebhookConfig

	// Booking rules
	Booking BookingConfig

	// Kafka booking event stream
	Kafka KafkaConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Logging
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string
	Enabled  bool
}

// CollaboratorConfig holds base URLs and timeouts for the external services
// the booking flow depends on: the movie/session directory and the
// seat-inventory & booking store.
type CollaboratorConfig struct {
	MoviesBaseURL   string
	BookingsBaseURL string
	RequestTimeout  time.Duration
}

// WebhookConfig holds the named notification endpoints. Responses are
// advisory only; every dispatch is fire-and-forget.
type WebhookConfig struct {
	BookingConfirmationURL string
	SessionReminderURL     string
	SheetsLogURL           string
	CancellationURL        string
	Timeout                time.Duration
	ReminderEnabled        bool
	ReminderInterval       time.Duration
	ReminderWindow         time.Duration
}

// BookingConfig holds seat selection and pricing rules
type BookingConfig struct {
	PremiumMultiplier  float64
	MaxSeatsPerBooking int
	MaxSessionPrice    float64
	SelectionTTL       time.Duration
	IdempotencyTTL     time.Duration
}

// KafkaConfig holds the booking event stream settings. An empty broker list
// disables the producer.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled         bool
	WindowDuration  time.Duration
	DefaultRequests int
	BookingRequests int
	WhitelistedIPs  []string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "cinebook_db"),
			User:     getEnv("DB_USER", "cinebook_user"),
			Password: getEnv("DB_PASSWORD", "cinebook_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			Enabled:  getBoolEnv("REDIS_ENABLED", true),
		},

		Collaborators: CollaboratorConfig{
			MoviesBaseURL:   getEnv("MOVIES_API_BASE_URL", "https://69765d19c0c36a2a9950ecb3.mockapi.io"),
			BookingsBaseURL: getEnv("BOOKINGS_API_BASE_URL", "https://69792073cd4fe130e3db380e.mockapi.io"),
			RequestTimeout:  getDurationEnv("COLLABORATOR_TIMEOUT", 10*time.Second),
		},

		Webhooks: WebhookConfig{
			BookingConfirmationURL: getEnv("WEBHOOK_BOOKING_CONFIRMATION_URL", ""),
			SessionReminderURL:     getEnv("WEBHOOK_SESSION_REMINDER_URL", ""),
			SheetsLogURL:           getEnv("WEBHOOK_SHEETS_LOG_URL", ""),
			CancellationURL:        getEnv("WEBHOOK_CANCELLATION_URL", ""),
			Timeout:                getDurationEnv("WEBHOOK_TIMEOUT", 5*time.Second),
			ReminderEnabled:        getBoolEnv("REMINDER_ENABLED", false),
			ReminderInterval:       getDurationEnv("REMINDER_INTERVAL", 15*time.Minute),
			ReminderWindow:         getDurationEnv("REMINDER_WINDOW", 2*time.Hour),
		},

		Booking: BookingConfig{
			PremiumMultiplier:  getFloatEnv("PREMIUM_MULTIPLIER", 1.5),
			MaxSeatsPerBooking: getIntEnv("MAX_SEATS_PER_BOOKING", 10),
			MaxSessionPrice:    getFloatEnv("MAX_SESSION_PRICE", 1000),
			SelectionTTL:       getDurationEnv("SELECTION_TTL", 30*time.Minute),
			IdempotencyTTL:     getDurationEnv("IDEMPOTENCY_TTL", 24*time.Hour),
		},

		Kafka: KafkaConfig{
			Brokers: getStringSliceEnv("KAFKA_BROKERS", []string{}),
			Topic:   getEnv("KAFKA_BOOKING_TOPIC", "booking-events"),
		},

		RateLimit: RateLimitConfig{
			Enabled:         getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:  getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests: getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			BookingRequests: getIntEnv("RATE_LIMIT_BOOKING_REQUESTS", 20),
			WhitelistedIPs:  getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getFloatEnv gets a float environment variable with a fallback value
func getFloatEnv(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
