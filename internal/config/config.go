package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName         = "FundiLink"
	defaultAppEnv          = "development"
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultShutdownDelay   = 10 * time.Second
	defaultIdempotencyTTL  = 24 * time.Hour
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour

	defaultMinFundingCurrency = 1500
	defaultMaxProofBytes      = 5 << 20
	defaultFeeMinCoins        = 15
	defaultFeeMaxCoins        = 50
	defaultFeeDefaultCoins    = 15
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName         string
	AppEnv          string
	Port            string
	LogLevel        string
	DatabaseURL     string
	RedisURL        string
	JWTSecret       string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	ShutdownPeriod  time.Duration
	IdempotencyTTL  time.Duration

	// Funding rules.
	MinFundingCurrency int64
	MaxProofBytes      int64

	// Contact access fee bounds, in coins.
	FeeMinCoins     int64
	FeeMaxCoins     int64
	FeeDefaultCoins int64

	// Proof image storage.
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:         getEnv("APP_NAME", defaultAppName),
		AppEnv:          getEnv("APP_ENV", defaultAppEnv),
		Port:            getEnv("PORT", defaultPort),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret"),
		RefreshSecret:   getEnv("REFRESH_SECRET", "dev-refresh-secret"),
		AccessTokenTTL:  defaultAccessTokenTTL,
		RefreshTokenTTL: defaultRefreshTokenTTL,
		ShutdownPeriod:  defaultShutdownDelay,
		IdempotencyTTL:  defaultIdempotencyTTL,

		MinFundingCurrency: defaultMinFundingCurrency,
		MaxProofBytes:      defaultMaxProofBytes,
		FeeMinCoins:        defaultFeeMinCoins,
		FeeMaxCoins:        defaultFeeMaxCoins,
		FeeDefaultCoins:    defaultFeeDefaultCoins,

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}

	var err error
	if cfg.ShutdownPeriod, err = durationEnv("SHUTDOWN_TIMEOUT", cfg.ShutdownPeriod); err != nil {
		return Config{}, err
	}
	if cfg.IdempotencyTTL, err = durationEnv("IDEMPOTENCY_TTL", cfg.IdempotencyTTL); err != nil {
		return Config{}, err
	}
	if cfg.AccessTokenTTL, err = durationEnv("ACCESS_TOKEN_TTL", cfg.AccessTokenTTL); err != nil {
		return Config{}, err
	}
	if cfg.RefreshTokenTTL, err = durationEnv("REFRESH_TOKEN_TTL", cfg.RefreshTokenTTL); err != nil {
		return Config{}, err
	}

	if cfg.MinFundingCurrency, err = int64Env("MIN_FUNDING_CURRENCY", cfg.MinFundingCurrency); err != nil {
		return Config{}, err
	}
	if cfg.MaxProofBytes, err = int64Env("MAX_PROOF_BYTES", cfg.MaxProofBytes); err != nil {
		return Config{}, err
	}
	if cfg.FeeMinCoins, err = int64Env("FEE_MIN_COINS", cfg.FeeMinCoins); err != nil {
		return Config{}, err
	}
	if cfg.FeeMaxCoins, err = int64Env("FEE_MAX_COINS", cfg.FeeMaxCoins); err != nil {
		return Config{}, err
	}
	if cfg.FeeDefaultCoins, err = int64Env("FEE_DEFAULT_COINS", cfg.FeeDefaultCoins); err != nil {
		return Config{}, err
	}

	if cfg.FeeMinCoins <= 0 || cfg.FeeMaxCoins < cfg.FeeMinCoins {
		return Config{}, fmt.Errorf("invalid fee bounds [%d, %d]", cfg.FeeMinCoins, cfg.FeeMaxCoins)
	}
	if cfg.FeeDefaultCoins < cfg.FeeMinCoins || cfg.FeeDefaultCoins > cfg.FeeMaxCoins {
		return Config{}, fmt.Errorf("default fee %d outside bounds [%d, %d]", cfg.FeeDefaultCoins, cfg.FeeMinCoins, cfg.FeeMaxCoins)
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
	}

	return cfg, nil
}

// IsDev reports whether the app runs in a development environment, where
// in-memory storage fallbacks are permitted.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	if v := os.Getenv(key + "_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s_SECONDS: %w", key, err)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, err)
		}
		return d, nil
	}
	return fallback, nil
}

func int64Env(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
