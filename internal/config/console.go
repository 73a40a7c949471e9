package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Console holds the console server's settings.
type Console struct {
	Environment   string `yaml:"environment"`
	ServerAddress string `yaml:"server_address"`
	LogLevel      string `yaml:"log_level"`

	APIURL     string        `yaml:"api_url"`
	APITimeout time.Duration `yaml:"api_timeout"`

	SessionSecret string        `yaml:"session_secret"`
	CookieSecure  bool          `yaml:"cookie_secure"`
	SessionIdle   time.Duration `yaml:"session_idle"`

	CredentialStore string        `yaml:"credential_store"`
	TokenTTL        time.Duration `yaml:"token_ttl"`
	RedisAddress    string        `yaml:"redis_address"`
	RedisUsername   string        `yaml:"redis_username"`
	RedisPassword   string        `yaml:"redis_password"`
}

func defaultConsole() Console {
	return Console{
		Environment:     "production",
		ServerAddress:   ":3000",
		LogLevel:        "info",
		APIURL:          "http://localhost:8000/api",
		SessionIdle:     12 * time.Hour,
		CredentialStore: StoreMemory,
		TokenTTL:        24 * time.Hour,
	}
}

const devSessionSecret = "signage-console-development-secret"

// LoadConsole reads defaults, the CONSOLE_CONFIG file and the environment, then validates.
func LoadConsole() (*Console, error) {
	cfg := defaultConsole()
	if err := overlay(os.Getenv("CONSOLE_CONFIG"), &cfg); err != nil {
		return nil, err
	}

	envString("APP_ENV", &cfg.Environment)
	envString("SERVER_ADDRESS", &cfg.ServerAddress)
	envString("LOG_LEVEL", &cfg.LogLevel)
	envString("API_URL", &cfg.APIURL)
	envString("SESSION_SECRET", &cfg.SessionSecret)
	envString("CREDENTIAL_STORE", &cfg.CredentialStore)
	envString("REDIS_ADDRESS", &cfg.RedisAddress)
	envString("REDIS_USERNAME", &cfg.RedisUsername)
	envString("REDIS_PASSWORD", &cfg.RedisPassword)
	for key, dst := range map[string]*time.Duration{
		"API_TIMEOUT":  &cfg.APITimeout,
		"SESSION_IDLE": &cfg.SessionIdle,
		"TOKEN_TTL":    &cfg.TokenTTL,
	} {
		if err := envDuration(key, dst); err != nil {
			return nil, err
		}
	}
	if err := envBool("COOKIE_SECURE", &cfg.CookieSecure); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Console) Development() bool { return c.Environment == EnvDevelopment }

// Validate checks the settings and fills the development session secret.
func (c *Console) Validate() error {
	if c.ServerAddress == "" {
		return errors.New("SERVER_ADDRESS is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_URL %q is not an absolute URL", c.APIURL)
	}
	if c.SessionSecret == "" {
		if !c.Development() {
			return errors.New("SESSION_SECRET is required")
		}
		log.Warn().Msg("SESSION_SECRET not set, using the development secret")
		c.SessionSecret = devSessionSecret
	}
	switch c.CredentialStore {
	case StoreMemory:
	case StoreRedis:
		if c.RedisAddress == "" {
			return errors.New("REDIS_ADDRESS is required for the redis credential store")
		}
	default:
		return fmt.Errorf("unknown CREDENTIAL_STORE %q", c.CredentialStore)
	}
	if c.APITimeout < 0 || c.TokenTTL < 0 || c.SessionIdle < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}
