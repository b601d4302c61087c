package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"

	"github.com/VitaminP8/dsaboard/internal/questions"
)

// Config is the server configuration. Keys match the environment variable
// names in lower case, so PORT sets port and JWT_TTL sets jwt_ttl.
type Config struct {
	Port                 int           `koanf:"port"`
	DatabaseURL          string        `koanf:"database_url"`
	GoogleClientID       string        `koanf:"google_client_id"`
	JWTSecret            string        `koanf:"jwt_secret"`
	JWTTTL               time.Duration `koanf:"jwt_ttl"`
	QuestionsURLTemplate string        `koanf:"questions_url_template"`
	HTTPTimeout          time.Duration `koanf:"http_timeout"`
	LogLevel             string        `koanf:"log_level"`
	AppEnv               string        `koanf:"app_env"`
	AuthRequireSession   bool          `koanf:"auth_require_session"`
	RateLimitRPS         float64       `koanf:"rate_limit_rps"`
	RateLimitBurst       int           `koanf:"rate_limit_burst"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"port":                   5000,
		"jwt_ttl":                72 * time.Hour,
		"questions_url_template": questions.DefaultURLTemplate,
		"http_timeout":           10 * time.Second,
		"log_level":              "info",
		"app_env":                "development",
		"auth_require_session":   false,
		"rate_limit_rps":         5.0,
		"rate_limit_burst":       10,
	}
}

// LoadEnv подгружает .env, если он есть
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug().Msg(".env file not found")
	}
}

// Load layers defaults, the optional TOML file at path and the environment,
// later sources winning.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the values the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if !strings.Contains(c.QuestionsURLTemplate, "%s") {
		return errors.New("QUESTIONS_URL_TEMPLATE must contain %s")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("rate limit must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "" || c.AppEnv == "development"
}
