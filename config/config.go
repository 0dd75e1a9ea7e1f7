package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the application configuration
type AppConfig struct {
	Env             string        `mapstructure:"ENV"`
	Port            string        `mapstructure:"PORT"`
	DBURL           string        `mapstructure:"DB_URL"`
	DBMaxOpenConns  int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns  int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBAutoMigrate   bool          `mapstructure:"DB_AUTO_MIGRATE"`
	RedisAddress    string        `mapstructure:"REDIS_URL"`
	RedisPoolSize   int           `mapstructure:"REDIS_POOL_SIZE"`
	SymmetricKey    string        `mapstructure:"SYMMETRIC_KEY"`
	CORSOrigins     []string      `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS    float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst  int           `mapstructure:"RATE_LIMIT_BURST"`
	QueryCacheTTL   time.Duration `mapstructure:"QUERY_CACHE_TTL"`
	NotificationTTL time.Duration `mapstructure:"NOTIFICATION_TTL"`
	SMTPConfig      `mapstructure:",squash"`
}

// SMTPConfig configures outgoing mail. An empty host disables mail.
type SMTPConfig struct {
	Host     string `mapstructure:"SMTP_HOST"`
	Port     int    `mapstructure:"SMTP_PORT"`
	User     string `mapstructure:"SMTP_USER"`
	Password string `mapstructure:"SMTP_PASS"`
}

var envKeys = []string{
	"ENV", "PORT", "DB_URL", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_AUTO_MIGRATE",
	"REDIS_URL", "REDIS_POOL_SIZE", "SYMMETRIC_KEY", "CORS_ORIGINS", "RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST", "QUERY_CACHE_TTL", "NOTIFICATION_TTL",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS",
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("ENV", "production")
	v.SetDefault("PORT", "8930")
	v.SetDefault("DB_MAX_OPEN_CONNS", 40)
	v.SetDefault("DB_MAX_IDLE_CONNS", 20)
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 15)
	v.SetDefault("RATE_LIMIT_BURST", 30)
	v.SetDefault("QUERY_CACHE_TTL", "5m")
	v.SetDefault("NOTIFICATION_TTL", "10m")
	v.SetDefault("SMTP_PORT", 587)

	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	// The .env file is optional
	_ = v.ReadInConfig()

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	if c.DBURL == "" {
		return fmt.Errorf("missing DB_URL environment variable")
	}
	if c.RedisAddress == "" {
		return fmt.Errorf("missing REDIS_URL environment variable")
	}
	if len(c.SymmetricKey) != 32 {
		return fmt.Errorf("SYMMETRIC_KEY must be 32 bytes long, got %d", len(c.SymmetricKey))
	}
	return nil
}

// IsDev reports whether the service runs in development mode.
func (c *AppConfig) IsDev() bool {
	return c.Env == "development"
}

// MailEnabled reports whether SMTP settings are present.
func (c *AppConfig) MailEnabled() bool {
	return c.SMTPConfig.Host != ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
