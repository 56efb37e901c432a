package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"familywallet/internal/core"
	"familywallet/internal/currency"
)

type Config struct {
	// HTTP Server
	Port string

	// Acting member role for mutation gating
	ActorRole string

	// Display currency used when a request does not override it
	DisplayCurrency string

	// Gemini assistant
	GeminiAPIKey string
	GeminiModel  string

	// Rate limiting
	RateLimitPerMinute int

	// Shutdown
	ShutdownTimeout time.Duration

	// Demo data
	SeedDemo bool
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		ActorRole:       getEnv("ACTOR_ROLE", string(core.RoleAdmin)),
		DisplayCurrency: getEnv("DISPLAY_CURRENCY", currency.Base),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),

		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		SeedDemo: getEnvBool("SEED_DEMO", true),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate actor role
	validRoles := []core.Role{core.RoleAdmin, core.RoleEditor, core.RoleViewer}
	isValidRole := false
	for _, role := range validRoles {
		if core.Role(c.ActorRole) == role {
			isValidRole = true
			break
		}
	}
	if !isValidRole {
		errors = append(errors, fmt.Sprintf("invalid actor role '%s': must be one of %v", c.ActorRole, validRoles))
	}

	// Validate display currency
	if _, err := currency.Rate(c.DisplayCurrency); err != nil {
		errors = append(errors, fmt.Sprintf("invalid display currency '%s': must be one of %v", c.DisplayCurrency, currency.Codes()))
	}

	// Validate Gemini model name if an API key is configured
	if c.GeminiAPIKey != "" && c.GeminiModel == "" {
		errors = append(errors, "Gemini model name cannot be empty when GEMINI_API_KEY is provided")
	}

	// Validate rate limit
	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1", c.RateLimitPerMinute))
	} else if c.RateLimitPerMinute > 10000 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at most 10000", c.RateLimitPerMinute))
	}

	// Validate shutdown timeout
	if c.ShutdownTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	} else if c.ShutdownTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at most 5 minutes", c.ShutdownTimeout))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// AssistantEnabled reports whether the advice endpoint can reach a model.
func (c *Config) AssistantEnabled() bool {
	return c.GeminiAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
