// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// JWTPrivateKey is the PEM-encoded private key (RSA or ECDSA) or a path to
	// one; signs session tokens.
	JWTPrivateKey string `mapstructure:"JWT_PRIVATE_KEY"`
	// JWTPublicKey is the PEM-encoded public key or a path to one.
	JWTPublicKey string `mapstructure:"JWT_PUBLIC_KEY"`
	// JWTIssuer is the iss claim.
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	// JWTAudience is the aud claim.
	JWTAudience string `mapstructure:"JWT_AUDIENCE"`
	// SessionTTLRaw is the session lifetime; sessions are fixed-lifetime with
	// no sliding renewal. Default 168h (7 days).
	SessionTTLRaw string `mapstructure:"SESSION_TTL"`
	// BcryptCost is the bcrypt cost factor (4 to 31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// UploadDir is where uploaded blobs (logos, documents) are written.
	UploadDir string `mapstructure:"UPLOAD_DIR"`
	// OTLPEndpoint is the OTLP gRPC collector endpoint; empty disables export.
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext export to an https endpoint.
	OTLPInsecure bool `mapstructure:"OTLP_INSECURE"`
	// LogLevel is trace|debug|info|warning|error|fatal.
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// LogFormat is text|json.
	LogFormat string `mapstructure:"LOG_FORMAT"`
	// Env is the application environment ("development", "production").
	// Production turns on the session cookie's Secure flag.
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment via Viper. Missing .env is ignored; env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_ISSUER", "paperbase")
	v.SetDefault("JWT_AUDIENCE", "paperbase-app")
	v.SetDefault("SESSION_TTL", "168h") // 7d
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("UPLOAD_DIR", "public/uploads")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("OTLP_INSECURE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_ENV", "development")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	return &cfg, nil
}

// SessionTTL parses SESSION_TTL as a time.Duration. Returns 168h if unset or
// invalid.
func (c *Config) SessionTTL() time.Duration {
	d, err := time.ParseDuration(c.SessionTTLRaw)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}

// IsProduction reports whether the app runs with production hardening.
func (c *Config) IsProduction() bool { return c.Env == "production" }
