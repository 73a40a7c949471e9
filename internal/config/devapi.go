package config

import (
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

type Spaces struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	CDNURL    string `yaml:"cdn_url"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// DevAPI holds the development backend's settings.
type DevAPI struct {
	Environment   string `yaml:"environment"`
	ServerAddress string `yaml:"server_address"`
	LogLevel      string `yaml:"log_level"`

	JWTSecret   string        `yaml:"jwt_secret"`
	TokenExpiry time.Duration `yaml:"token_expiry"`

	// memory store when empty
	DatabaseURL    string `yaml:"database_url"`
	MigrationsPath string `yaml:"migrations_path"`

	UploadDir string `yaml:"upload_dir"`
	PublicURL string `yaml:"public_url"`
	UseSpaces bool   `yaml:"use_spaces"`
	Spaces    Spaces `yaml:"spaces"`

	MQTTBrokerURL string `yaml:"mqtt_broker_url"`
	MQTTClientID  string `yaml:"mqtt_client_id"`

	CORSOrigins []string `yaml:"cors_origins"`

	SeedAdminUsername string `yaml:"seed_admin_username"`
	SeedAdminPassword string `yaml:"seed_admin_password"`
}

func defaultDevAPI() DevAPI {
	return DevAPI{
		Environment:    "production",
		ServerAddress:  ":8000",
		LogLevel:       "info",
		TokenExpiry:    30 * time.Minute,
		MigrationsPath: "./migrations",
		UploadDir:      "./uploads",
		MQTTClientID:   "signage-devapi",
		CORSOrigins:    []string{"http://localhost:3000"},
	}
}

const devJWTSecret = "signage-devapi-development-secret"

// LoadDevAPI reads defaults, the DEVAPI_CONFIG file and the environment, then validates.
func LoadDevAPI() (*DevAPI, error) {
	cfg := defaultDevAPI()
	if err := overlay(os.Getenv("DEVAPI_CONFIG"), &cfg); err != nil {
		return nil, err
	}

	envString("APP_ENV", &cfg.Environment)
	envString("SERVER_ADDRESS", &cfg.ServerAddress)
	envString("LOG_LEVEL", &cfg.LogLevel)
	envString("JWT_SECRET", &cfg.JWTSecret)
	envString("DATABASE_URL", &cfg.DatabaseURL)
	envString("MIGRATIONS_PATH", &cfg.MigrationsPath)
	envString("UPLOAD_DIR", &cfg.UploadDir)
	envString("PUBLIC_URL", &cfg.PublicURL)
	envString("SPACES_ENDPOINT", &cfg.Spaces.Endpoint)
	envString("SPACES_REGION", &cfg.Spaces.Region)
	envString("SPACES_BUCKET", &cfg.Spaces.Bucket)
	envString("SPACES_CDN_URL", &cfg.Spaces.CDNURL)
	envString("SPACES_ACCESS_KEY", &cfg.Spaces.AccessKey)
	envString("SPACES_SECRET_KEY", &cfg.Spaces.SecretKey)
	envString("MQTT_BROKER_URL", &cfg.MQTTBrokerURL)
	envString("MQTT_CLIENT_ID", &cfg.MQTTClientID)
	envString("SEED_ADMIN_USERNAME", &cfg.SeedAdminUsername)
	envString("SEED_ADMIN_PASSWORD", &cfg.SeedAdminPassword)
	envList("CORS_ORIGINS", &cfg.CORSOrigins)
	if err := envBool("USE_SPACES", &cfg.UseSpaces); err != nil {
		return nil, err
	}
	if err := envDuration("TOKEN_EXPIRY", &cfg.TokenExpiry); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *DevAPI) Development() bool { return c.Environment == EnvDevelopment }

func (c *DevAPI) Validate() error {
	if c.ServerAddress == "" {
		return errors.New("SERVER_ADDRESS is required")
	}
	if c.JWTSecret == "" {
		if !c.Development() {
			return errors.New("JWT_SECRET is required")
		}
		log.Warn().Msg("JWT_SECRET not set, using the development secret")
		c.JWTSecret = devJWTSecret
	}
	if c.TokenExpiry <= 0 {
		return errors.New("TOKEN_EXPIRY must be positive")
	}
	if c.UseSpaces {
		s := c.Spaces
		if s.Endpoint == "" || s.Region == "" || s.Bucket == "" || s.AccessKey == "" || s.SecretKey == "" {
			return errors.New("USE_SPACES requires SPACES_ENDPOINT, SPACES_REGION, SPACES_BUCKET and credentials")
		}
	}
	if (c.SeedAdminUsername == "") != (c.SeedAdminPassword == "") {
		return errors.New("SEED_ADMIN_USERNAME and SEED_ADMIN_PASSWORD go together")
	}
	return nil
}
