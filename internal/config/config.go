package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig
	Inference InferenceConfig
	Chat      ChatConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// InferenceConfig describes the upstream chat-completions endpoint.
type InferenceConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// ChatConfig holds conversation-level settings.
type ChatConfig struct {
	// MaxHistory is the bounded transcript window: only the most recent
	// MaxHistory turns are retained per session.
	MaxHistory int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig controls the optional redis-backed limiter on /api/chat.
type RateLimitConfig struct {
	Enabled     bool
	MaxRequests int
	WindowSec   int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Load .env file if it exists (ignore error if missing)
	_ = k.Load(file.Provider(".env"), dotenv.Parser())

	// Load environment variables (override .env)
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "_", "."))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: k.String("server.host"),
			Port: k.Int("server.port"),
		},
		Inference: InferenceConfig{
			BaseURL:     k.String("inference.base.url"),
			APIKey:      k.String("inference.api.key"),
			Model:       k.String("inference.model"),
			Temperature: k.Float64("inference.temperature"),
			MaxTokens:   k.Int("inference.max.tokens"),
		},
		Chat: ChatConfig{
			MaxHistory: k.Int("chat.max.history"),
		},
		RateLimit: RateLimitConfig{
			Enabled:     k.Bool("ratelimit.enabled"),
			MaxRequests: k.Int("ratelimit.max.requests"),
			WindowSec:   k.Int("ratelimit.window.sec"),
		},
		Redis: RedisConfig{
			Host:     k.String("redis.host"),
			Port:     k.Int("redis.port"),
			Password: k.String("redis.password"),
			DB:       k.Int("redis.db"),
		},
		Log: LogConfig{
			Level:  k.String("log.level"),
			Format: k.String("log.format"),
		},
	}

	if origins := k.String("cors.allowed.origins"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, o)
			}
		}
	}

	// Apply defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Inference.BaseURL == "" {
		cfg.Inference.BaseURL = "https://router.huggingface.co/v1"
	}
	if cfg.Inference.Model == "" {
		cfg.Inference.Model = "Qwen/Qwen2.5-VL-7B-Instruct"
	}
	if cfg.Inference.Temperature == 0 {
		cfg.Inference.Temperature = 0.7
	}
	if cfg.Inference.MaxTokens == 0 {
		cfg.Inference.MaxTokens = 1024
	}
	if cfg.Chat.MaxHistory == 0 {
		cfg.Chat.MaxHistory = 30
	}
	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = 20
	}
	if cfg.RateLimit.WindowSec == 0 {
		cfg.RateLimit.WindowSec = 60
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	// Parse durations
	timeoutStr := k.String("inference.timeout")
	if timeoutStr == "" {
		timeoutStr = "60s"
	}
	cfg.Inference.Timeout, err = time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("parsing inference timeout: %w", err)
	}

	return cfg, nil
}
