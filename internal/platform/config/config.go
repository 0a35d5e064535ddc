package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Connection pool bounds. These are resource-exhaustion safety valves, not
	// business logic; exceeding them surfaces as a pool error to the caller.
	DBMaxConns         int32
	DBMinConns         int32
	DBMaxConnIdleTime  time.Duration
	DBConnectTimeout   time.Duration
	DBStatementTimeout time.Duration

	// Retry policy for transient database failures.
	RetryMaxRetries int
	RetryBaseDelay  time.Duration
	RetryMaxDelay   time.Duration

	// Amount in cents granted to every new player from the initial_grant account.
	StartingGrantCents int64

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	SessionExpiryDuration  time.Duration
	RefreshTokenCookieName string
	RefreshTokenCookiePath string

	// External OAuth provider (optional; empty disables Google sign-in).
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	PosthogAPIKey string `mapstructure:"POSTHOG_API_KEY"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIN_CONNS", 2)
	viper.SetDefault("DB_MAX_CONN_IDLE_TIME", "5m")
	viper.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	viper.SetDefault("DB_STATEMENT_TIMEOUT", "10s")
	viper.SetDefault("RETRY_MAX_RETRIES", 4)
	viper.SetDefault("RETRY_BASE_DELAY", "1s")
	viper.SetDefault("RETRY_MAX_DELAY", "30s")
	viper.SetDefault("STARTING_GRANT_CENTS", 50000)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "bce-backend")
	viper.SetDefault("SESSION_EXPIRY_DURATION", "720h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/auth")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.DBMaxConns = viper.GetInt32("DB_MAX_CONNS")
	cfg.DBMinConns = viper.GetInt32("DB_MIN_CONNS")
	cfg.DBMaxConnIdleTime = parseDurationOr("DB_MAX_CONN_IDLE_TIME", 5*time.Minute)
	cfg.DBConnectTimeout = parseDurationOr("DB_CONNECT_TIMEOUT", 5*time.Second)
	cfg.DBStatementTimeout = parseDurationOr("DB_STATEMENT_TIMEOUT", 10*time.Second)

	cfg.RetryMaxRetries = viper.GetInt("RETRY_MAX_RETRIES")
	cfg.RetryBaseDelay = parseDurationOr("RETRY_BASE_DELAY", time.Second)
	cfg.RetryMaxDelay = parseDurationOr("RETRY_MAX_DELAY", 30*time.Second)

	cfg.StartingGrantCents = viper.GetInt64("STARTING_GRANT_CENTS")
	if cfg.StartingGrantCents <= 0 {
		log.Printf("Warning: STARTING_GRANT_CENTS must be positive, got %d. Defaulting to 50000.\n", cfg.StartingGrantCents)
		cfg.StartingGrantCents = 50000
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = parseDurationOr("JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.SessionExpiryDuration = parseDurationOr("SESSION_EXPIRY_DURATION", 30*24*time.Hour)
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookiePath = viper.GetString("REFRESH_TOKEN_COOKIE_PATH")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

// parseDurationOr reads a duration-valued key, falling back to def on a bad value.
func parseDurationOr(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}
