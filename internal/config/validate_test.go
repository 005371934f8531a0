package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Inference: InferenceConfig{
			BaseURL:     "https://router.huggingface.co/v1",
			APIKey:      "hf_test_token",
			Model:       "Qwen/Qwen2.5-VL-7B-Instruct",
			Temperature: 0.7,
			MaxTokens:   1024,
			Timeout:     60 * time.Second,
		},
		Chat:      ChatConfig{MaxHistory: 30},
		RateLimit: RateLimitConfig{Enabled: false, MaxRequests: 20, WindowSec: 60},
		Redis:     RedisConfig{Host: "localhost", Port: 6379},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Inference.APIKey = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "INFERENCE_API_KEY") {
		t.Fatalf("expected INFERENCE_API_KEY error, got: %v", err)
	}
}

func TestValidate_TemperatureOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Inference.Temperature = 3.5
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "INFERENCE_TEMPERATURE") {
		t.Fatalf("expected INFERENCE_TEMPERATURE error, got: %v", err)
	}
}

func TestValidate_NonPositiveMaxHistory(t *testing.T) {
	cfg := validConfig()
	cfg.Chat.MaxHistory = 0
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "CHAT_MAX_HISTORY") {
		t.Fatalf("expected CHAT_MAX_HISTORY error, got: %v", err)
	}
}

func TestValidate_InvalidServerPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 70000
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Fatalf("expected SERVER_PORT error, got: %v", err)
	}
}

func TestValidate_RateLimitDisabledSkipsRedisChecks(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.Enabled = false
	cfg.Redis.Port = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error with rate limiting disabled, got: %v", err)
	}
}

func TestValidate_RateLimitEnabledChecksRedisPort(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.Enabled = true
	cfg.Redis.Port = 0
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "REDIS_PORT") {
		t.Fatalf("expected REDIS_PORT error, got: %v", err)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Inference.APIKey = ""
	cfg.Chat.MaxHistory = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "INFERENCE_API_KEY") || !strings.Contains(err.Error(), "CHAT_MAX_HISTORY") {
		t.Fatalf("expected both errors reported, got: %v", err)
	}
}
