package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration. DBDriver is "postgres" or "sqlite".
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DBPath      string

	// Redis configuration (optional)
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Session configuration
	JWTSecret         string
	SessionCookieName string
	SecureCookies     bool

	// Food recognition and nutrition lookup
	AIProvider           string
	GeminiAPIKey         string
	GeminiModel          string
	OpenAIAPIKey         string
	OpenAIModel          string
	FatSecretAccessToken string

	PortionMultiplier float64
	AnalysisCacheTTL  time.Duration
	MaxUploadBytes    int64

	// Photo storage (optional)
	S3BucketName string
	AWSRegion    string

	CORSAllowedOrigins []string
	LogLevel           string

	// Warnings collects non-fatal problems found while loading.
	Warnings []string
}

// secretFiles maps config keys to Docker secret file names.
var secretFiles = map[string]string{
	"JWT_SECRET":             "jwt_secret",
	"DB_PASSWORD":            "db_password",
	"REDIS_PASSWORD":         "redis_password",
	"GEMINI_API_KEY":         "gemini_api_key",
	"OPENAI_API_KEY":         "openai_api_key",
	"FATSECRET_ACCESS_TOKEN": "fatsecret_access_token",
}

// LoadConfig reads configuration from the environment, an optional .env file
// and, outside CI, Docker secret files.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	env := GetEnvironment()
	v := viper.New()
	setDefaults(v, env)
	v.AutomaticEnv()

	if env != CI {
		for key, name := range secretFiles {
			if os.Getenv(key) != "" {
				continue
			}
			if secret := readSecret(name); secret != "" {
				v.Set(key, secret)
			}
		}
	}

	cfg := &Config{
		Env:                  env,
		ServerPort:           v.GetString("SERVER_PORT"),
		ServerHost:           v.GetString("SERVER_HOST"),
		DatabaseURL:          v.GetString("DATABASE_URL"),
		DBHost:               v.GetString("DB_HOST"),
		DBPort:               v.GetString("DB_PORT"),
		DBUser:               v.GetString("DB_USER"),
		DBPassword:           v.GetString("DB_PASSWORD"),
		DBName:               v.GetString("DB_NAME"),
		DBSSLMode:            v.GetString("DB_SSL_MODE"),
		DBPath:               v.GetString("DB_PATH"),
		RedisURL:             v.GetString("REDIS_URL"),
		RedisHost:            v.GetString("REDIS_HOST"),
		RedisPort:            v.GetString("REDIS_PORT"),
		RedisPassword:        v.GetString("REDIS_PASSWORD"),
		RedisDB:              v.GetInt("REDIS_DB"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		SessionCookieName:    v.GetString("SESSION_COOKIE_NAME"),
		SecureCookies:        v.GetBool("SECURE_COOKIES"),
		AIProvider:           strings.ToLower(v.GetString("AI_PROVIDER")),
		GeminiAPIKey:         v.GetString("GEMINI_API_KEY"),
		GeminiModel:          v.GetString("GEMINI_MODEL"),
		OpenAIAPIKey:         v.GetString("OPENAI_API_KEY"),
		OpenAIModel:          v.GetString("OPENAI_MODEL"),
		FatSecretAccessToken: v.GetString("FATSECRET_ACCESS_TOKEN"),
		PortionMultiplier:    v.GetFloat64("PORTION_MULTIPLIER"),
		AnalysisCacheTTL:     v.GetDuration("ANALYSIS_CACHE_TTL"),
		MaxUploadBytes:       v.GetInt64("MAX_UPLOAD_BYTES"),
		S3BucketName:         v.GetString("S3_BUCKET_NAME"),
		AWSRegion:            v.GetString("AWS_REGION"),
		CORSAllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LogLevel:             v.GetString("LOG_LEVEL"),
	}

	cfg.DBDriver = strings.ToLower(v.GetString("DB_DRIVER"))
	if cfg.DBDriver == "" {
		cfg.DBDriver = defaultDriver(env, cfg.DatabaseURL)
	}

	if cfg.JWTSecret == "" && env != Production {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		cfg.JWTSecret = secret
		cfg.Warnings = append(cfg.Warnings, "JWT_SECRET not set; using a generated secret, sessions will not survive a restart")
	}
	if cfg.AIProvider == ProviderGemini && cfg.GeminiAPIKey == "" {
		cfg.Warnings = append(cfg.Warnings, "GEMINI_API_KEY not set; meal photo analysis will fail")
	}
	if cfg.AIProvider == ProviderOpenAI && cfg.OpenAIAPIKey == "" {
		cfg.Warnings = append(cfg.Warnings, "OPENAI_API_KEY not set; meal photo analysis will fail")
	}
	if cfg.FatSecretAccessToken == "" {
		cfg.Warnings = append(cfg.Warnings, "FATSECRET_ACCESS_TOKEN not set; unknown foods fall back to generic nutrition")
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, env Environment) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "5001")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "health_tracker")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_PATH", "health_tracker.db")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_COOKIE_NAME", "health_tracker_session")
	v.SetDefault("SECURE_COOKIES", env == Production)
	v.SetDefault("AI_PROVIDER", ProviderGemini)
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("PORTION_MULTIPLIER", 1.5)
	v.SetDefault("ANALYSIS_CACHE_TTL", 168*time.Hour)
	v.SetDefault("MAX_UPLOAD_BYTES", int64(10<<20))
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5001")
	v.SetDefault("LOG_LEVEL", "info")
}

func defaultDriver(env Environment, databaseURL string) string {
	if databaseURL != "" {
		return DriverPostgres
	}
	if env == Development || env == Test {
		return DriverSQLite
	}
	return DriverPostgres
}

// PostgresDSN returns DATABASE_URL when set, otherwise a keyword DSN built from
// the DB_* fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether a Redis target has been configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// S3Enabled reports whether meal photos go to an S3 bucket.
func (c *Config) S3Enabled() bool {
	return c.S3BucketName != ""
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
