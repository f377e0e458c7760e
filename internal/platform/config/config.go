package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string
	JWTSecret      string

	CORSAllowedOrigins []string
	RateLimit          string // ulule limiter format, e.g. "100-M"

	// Pricing
	QuoteServiceURL         string
	QuoteTimeout            time.Duration
	QuoteStalenessThreshold time.Duration

	// Fees
	WithdrawalFeeOnTop bool
	Fees               domain.FeeSchedule
}

// UsesDatabase reports whether a Postgres URL was configured. Without one the
// process runs on in-memory stores.
func (c *Config) UsesDatabase() bool { return c.DatabaseURL != "" }

var feeKeys = map[domain.OperationKind]string{
	domain.OperationDeposit:    "DEPOSIT",
	domain.OperationWithdrawal: "WITHDRAWAL",
	domain.OperationBuy:        "BUY",
	domain.OperationSell:       "SELL",
	domain.OperationExchange:   "EXCHANGE",
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("QUOTE_SERVICE_URL", "")
	v.SetDefault("QUOTE_TIMEOUT", "3s")
	v.SetDefault("QUOTE_STALENESS_THRESHOLD", "60s")
	v.SetDefault("WITHDRAWAL_FEE_ON_TOP", false)

	v.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using in-memory stores.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")
	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.QuoteServiceURL = v.GetString("QUOTE_SERVICE_URL")
	cfg.WithdrawalFeeOnTop = v.GetBool("WITHDRAWAL_FEE_ON_TOP")

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.QuoteTimeout = durationOr(v, "QUOTE_TIMEOUT", 3*time.Second)
	cfg.QuoteStalenessThreshold = durationOr(v, "QUOTE_STALENESS_THRESHOLD", time.Minute)

	fees, err := loadFeeSchedule(v)
	if err != nil {
		return nil, err
	}
	cfg.Fees = fees

	return cfg, nil
}

func durationOr(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

// loadFeeSchedule overlays FEE_<OP>_PERCENT|MIN|MAX on the default schedule.
// PERCENT is a fraction: 0.01 is one percent.
func loadFeeSchedule(v *viper.Viper) (domain.FeeSchedule, error) {
	schedule := domain.DefaultFeeSchedule()
	for kind, name := range feeKeys {
		rule := schedule[kind]
		for suffix, target := range map[string]*decimal.Decimal{
			"PERCENT": &rule.Percentage,
			"MIN":     &rule.Minimum,
			"MAX":     &rule.Maximum,
		} {
			key := fmt.Sprintf("FEE_%s_%s", name, suffix)
			raw := strings.TrimSpace(v.GetString(key))
			if raw == "" {
				continue
			}
			d, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid %s %q: %w", key, raw, err)
			}
			if d.IsNegative() {
				return nil, fmt.Errorf("invalid %s %q: must not be negative", key, raw)
			}
			*target = d
		}
		schedule[kind] = rule
	}
	return schedule, nil
}
