package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	Env        string
	ServerPort string
	LogLevel   string

	DBDriver       string
	DBUrl          string
	MigrateOnStart bool
	SeedDemoAdmins bool

	SessionTTL     time.Duration
	VerifyTokenTTL time.Duration
	ResetTokenTTL  time.Duration
	BcryptCost     int

	// Verification and reset tokens are echoed in API responses only when set.
	ExposeVerificationTokens bool
	PublicBaseURL            string

	Timezone         string
	AutoCompleteCron string

	Redis    RedisConfig
	SMTP     SMTPConfig
	Firebase FirebaseConfig
	S3       S3Config
	Twilio   TwilioConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type FirebaseConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries uint64
}

type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
}

func (c TwilioConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.From != ""
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	p := &parser{}

	cfg := &Config{
		Env:        getEnv("APP_ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
		DBUrl:          getEnv("DATABASE_URL", "root:@tcp(localhost:3306)/glamconnect_db?charset=utf8mb4"),
		MigrateOnStart: p.bool("MIGRATE_ON_START", true),
		SeedDemoAdmins: p.bool("SEED_DEMO_ADMINS", false),

		SessionTTL:     p.duration("SESSION_TTL", 24*time.Hour),
		VerifyTokenTTL: p.duration("VERIFY_TOKEN_TTL", 24*time.Hour),
		ResetTokenTTL:  p.duration("RESET_TOKEN_TTL", time.Hour),
		BcryptCost:     p.int("BCRYPT_COST", 10),

		ExposeVerificationTokens: p.bool("EXPOSE_VERIFICATION_TOKENS", false),
		PublicBaseURL:            strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),

		Timezone:         getEnv("SALON_TIMEZONE", "UTC"),
		AutoCompleteCron: getEnv("AUTO_COMPLETE_CRON", "@every 15m"),

		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       p.int("REDIS_DB", 0),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     p.int("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@glamconnect.local"),
		},
		Firebase: FirebaseConfig{
			BaseURL:    strings.TrimRight(getEnv("FIREBASE_BASE_URL", "https://identitytoolkit.googleapis.com/v1"), "/"),
			Timeout:    p.duration("FIREBASE_TIMEOUT", 10*time.Second),
			MaxRetries: uint64(p.int("FIREBASE_MAX_RETRIES", 2)),
		},
		S3: S3Config{
			Bucket:        getEnv("S3_BUCKET", ""),
			Region:        getEnv("S3_REGION", "us-east-1"),
			Endpoint:      getEnv("S3_ENDPOINT", ""),
			AccessKey:     getEnv("S3_ACCESS_KEY", ""),
			SecretKey:     getEnv("S3_SECRET_KEY", ""),
			PublicBaseURL: strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		},
		Twilio: TwilioConfig{
			AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			From:       getEnv("TWILIO_FROM_NUMBER", ""),
		},
	}

	if p.err != nil {
		return nil, p.err
	}

	if cfg.DBDriver != DriverMySQL && cfg.DBDriver != DriverPostgres {
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverMySQL, DriverPostgres, cfg.DBDriver)
	}

	if cfg.IsProduction() && cfg.ExposeVerificationTokens {
		return nil, fmt.Errorf("EXPOSE_VERIFICATION_TOKENS cannot be enabled when APP_ENV=production")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parser keeps the first conversion error so Load can report it once.
type parser struct {
	err error
}

func (p *parser) int(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) bool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return b
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return d
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
}
