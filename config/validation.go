package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is every violation found by ValidateConfig.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	Required []string
}

var requirements = map[Environment]ConfigRequirements{
	Development: {Required: []string{"SERVER_PORT"}},
	Test:        {Required: []string{"SERVER_PORT"}},
	CI:          {Required: []string{"SERVER_PORT", "JWT_SECRET"}},
	Production:  {Required: []string{"SERVER_PORT", "JWT_SECRET"}},
}

func (c *Config) lookup(key string) string {
	switch key {
	case "SERVER_PORT":
		return c.ServerPort
	case "JWT_SECRET":
		return c.JWTSecret
	}
	return ""
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	for _, key := range requirements[cfg.Env].Required {
		if cfg.lookup(key) == "" {
			errs = append(errs, ValidationError{Field: key, Message: "is required"})
		}
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" && (cfg.DBHost == "" || cfg.DBName == "") {
			errs = append(errs, ValidationError{Field: "DATABASE_URL", Message: "DATABASE_URL or DB_HOST and DB_NAME are required for postgres"})
		}
	case DriverSQLite:
		if cfg.Env == Production {
			errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not supported in production"})
		}
		if cfg.DBPath == "" {
			errs = append(errs, ValidationError{Field: "DB_PATH", Message: "is required for sqlite"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unknown driver %q", cfg.DBDriver)})
	}

	if cfg.AIProvider != ProviderGemini && cfg.AIProvider != ProviderOpenAI {
		errs = append(errs, ValidationError{Field: "AI_PROVIDER", Message: fmt.Sprintf("unknown provider %q", cfg.AIProvider)})
	}
	if cfg.PortionMultiplier <= 0 {
		errs = append(errs, ValidationError{Field: "PORTION_MULTIPLIER", Message: "must be greater than zero"})
	}
	if cfg.MaxUploadBytes <= 0 {
		errs = append(errs, ValidationError{Field: "MAX_UPLOAD_BYTES", Message: "must be greater than zero"})
	}
	if cfg.AnalysisCacheTTL < 0 {
		errs = append(errs, ValidationError{Field: "ANALYSIS_CACHE_TTL", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
