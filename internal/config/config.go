package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Storage
	StoreBackend string
	SQLiteDBPath string

	// AMQP (empty URL disables budget-recompute messaging)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Auth: "token:ownerID" pairs, comma separated. Token issuance is
	// handled by the external identity service; this service only maps
	// already-issued tokens to owners.
	APITokens string

	LogLevel string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		StoreBackend: getEnv("STORE_BACKEND", "sqlite"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/spendly.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "spendly"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "budget_recompute"),

		APITokens: getEnv("API_TOKENS", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration and returns all problems at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.StoreBackend {
	case "memory", "sqlite":
	default:
		errors = append(errors, fmt.Sprintf("invalid store backend '%s': must be one of [memory sqlite]", c.StoreBackend))
	}

	if c.StoreBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if _, err := ParseAPITokens(c.APITokens); err != nil {
		errors = append(errors, err.Error())
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ParseAPITokens parses "token:ownerID" pairs separated by commas into a
// token-to-owner map. An empty value yields an empty map (no callers can
// authenticate until tokens are configured).
func ParseAPITokens(s string) (map[string]string, error) {
	tokens := make(map[string]string)
	if strings.TrimSpace(s) == "" {
		return tokens, nil
	}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, owner, ok := strings.Cut(pair, ":")
		if !ok || strings.TrimSpace(token) == "" || strings.TrimSpace(owner) == "" {
			return nil, fmt.Errorf("invalid API token entry '%s': expected token:ownerID", pair)
		}
		tokens[strings.TrimSpace(token)] = strings.TrimSpace(owner)
	}
	return tokens, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
