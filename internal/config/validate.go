package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks Config for startup-critical problems.
// It collects all errors into a single joined error.
func (c *Config) Validate() error {
	var errs []string

	// Without the upstream credential every chat request would fail,
	// so refuse to start.
	if c.Inference.APIKey == "" {
		errs = append(errs, "INFERENCE_API_KEY is required")
	}
	if c.Inference.BaseURL == "" {
		errs = append(errs, "INFERENCE_BASE_URL must not be empty")
	}
	if c.Inference.Model == "" {
		errs = append(errs, "INFERENCE_MODEL must not be empty")
	}
	if c.Inference.Temperature < 0 || c.Inference.Temperature > 2 {
		errs = append(errs, fmt.Sprintf("INFERENCE_TEMPERATURE must be 0–2, got %g", c.Inference.Temperature))
	}
	if c.Inference.MaxTokens < 1 {
		errs = append(errs, fmt.Sprintf("INFERENCE_MAX_TOKENS must be positive, got %d", c.Inference.MaxTokens))
	}
	if c.Inference.Timeout <= 0 {
		errs = append(errs, "INFERENCE_TIMEOUT must be positive")
	}

	if c.Chat.MaxHistory < 1 {
		errs = append(errs, fmt.Sprintf("CHAT_MAX_HISTORY must be positive, got %d", c.Chat.MaxHistory))
	}

	// Port ranges
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT must be 1–65535, got %d", c.Server.Port))
	}
	if c.RateLimit.Enabled {
		if c.Redis.Port < 1 || c.Redis.Port > 65535 {
			errs = append(errs, fmt.Sprintf("REDIS_PORT must be 1–65535, got %d", c.Redis.Port))
		}
		if c.RateLimit.MaxRequests < 1 {
			errs = append(errs, fmt.Sprintf("RATELIMIT_MAX_REQUESTS must be positive, got %d", c.RateLimit.MaxRequests))
		}
		if c.RateLimit.WindowSec < 1 {
			errs = append(errs, fmt.Sprintf("RATELIMIT_WINDOW_SEC must be positive, got %d", c.RateLimit.WindowSec))
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}
