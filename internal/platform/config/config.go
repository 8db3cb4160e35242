package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

const (
	defaultJWTSecret        = "a-very-secret-key-should-be-longer-and-random"
	defaultTaxLookupTimeout = 5 * time.Second
	defaultRateLimit        = "100-M"
	defaultFallbackRatio    = "0.40"
	defaultDBMaxConns       = 10
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	DBMaxConns    int32
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// External tax rule lookup
	TaxLookupEnabled bool
	TaxLookupURL     string
	TaxLookupTimeout time.Duration

	// ReservationFallbackRatio is the share of profit reserved for income tax when
	// no bracket calculation is possible. Clamped to [0.30, 0.50] by the advisor.
	ReservationFallbackRatio decimal.Decimal

	RateLimit          limiter.Rate
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("DB_MAX_CONNS", defaultDBMaxConns)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("TAX_LOOKUP_ENABLED", false)
	viper.SetDefault("TAX_LOOKUP_URL", "")
	viper.SetDefault("TAX_LOOKUP_TIMEOUT", defaultTaxLookupTimeout.String())
	viper.SetDefault("RESERVATION_FALLBACK_RATIO", defaultFallbackRatio)
	viper.SetDefault("RATE_LIMIT", defaultRateLimit)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.DBMaxConns = viper.GetInt32("DB_MAX_CONNS")
	if cfg.DBMaxConns <= 0 {
		log.Printf("Warning: Invalid value for DB_MAX_CONNS (%d). Defaulting to %d.\n", cfg.DBMaxConns, defaultDBMaxConns)
		cfg.DBMaxConns = defaultDBMaxConns
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.TaxLookupURL = viper.GetString("TAX_LOOKUP_URL")
	cfg.TaxLookupEnabled = viper.GetBool("TAX_LOOKUP_ENABLED")
	if cfg.TaxLookupEnabled && cfg.TaxLookupURL == "" {
		log.Println("Warning: TAX_LOOKUP_ENABLED is set without TAX_LOOKUP_URL. External tax lookup disabled.")
		cfg.TaxLookupEnabled = false
	}

	timeoutStr := viper.GetString("TAX_LOOKUP_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		log.Printf("Warning: Invalid value for TAX_LOOKUP_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, defaultTaxLookupTimeout)
		timeout = defaultTaxLookupTimeout
	}
	cfg.TaxLookupTimeout = timeout

	ratioStr := viper.GetString("RESERVATION_FALLBACK_RATIO")
	ratio, err := decimal.NewFromString(ratioStr)
	if err != nil || !ratio.IsPositive() {
		log.Printf("Warning: Invalid value for RESERVATION_FALLBACK_RATIO ('%s'). Defaulting to %s.\n", ratioStr, defaultFallbackRatio)
		ratio = decimal.RequireFromString(defaultFallbackRatio)
	}
	cfg.ReservationFallbackRatio = ratio

	rateStr := viper.GetString("RATE_LIMIT")
	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		log.Printf("Warning: Invalid value for RATE_LIMIT ('%s'). Defaulting to %s.\n", rateStr, defaultRateLimit)
		rate, _ = limiter.NewRateFromFormatted(defaultRateLimit)
	}
	cfg.RateLimit = rate

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
