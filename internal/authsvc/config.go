// Package authsvc is the BionicPRO auth service. It exchanges authorization
// codes with Keycloak, keeps the tokens server side and hands the browser or
// CLI an opaque session cookie instead.
package authsvc

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every service environment variable.
const EnvPrefix = "AUTH"

// Config is the service configuration, read from AUTH_* variables.
type Config struct {
	Listen        string        `envconfig:"LISTEN" default:":8081" validate:"required"`
	KeycloakURL   string        `envconfig:"KEYCLOAK_URL" default:"http://localhost:8080" validate:"required,url"`
	Realm         string        `envconfig:"KEYCLOAK_REALM" default:"reports-realm" validate:"required"`
	ClientID      string        `envconfig:"KEYCLOAK_CLIENT_ID" default:"reports-frontend" validate:"required"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	EncryptionKey string        `envconfig:"ENCRYPTION_KEY" validate:"required,min=16"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"7200s" validate:"gt=0"`
	AccessTTL     time.Duration `envconfig:"ACCESS_TTL" default:"300s" validate:"gt=0"`
	CallbackRate  float64       `envconfig:"CALLBACK_RATE" default:"5" validate:"gt=0"`
	CallbackBurst int           `envconfig:"CALLBACK_BURST" default:"10" validate:"min=1"`
	LogFile       string        `envconfig:"LOG_FILE"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
}

// LoadConfig reads the environment and validates the result.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// TokenURL is the Keycloak token endpoint of the realm.
func (c *Config) TokenURL() string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", c.KeycloakURL, c.Realm)
}
