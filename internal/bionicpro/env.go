package bionicpro

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds environment-based configuration. Set values win over the config file.
type EnvConfig struct {
	AuthServiceURL string `envconfig:"AUTH_SERVICE_URL"`
	KeycloakURL    string `envconfig:"KEYCLOAK_URL"`
	Realm          string `envconfig:"KEYCLOAK_REALM"`
	ClientID       string `envconfig:"KEYCLOAK_CLIENT_ID"`
	APIURL         string `envconfig:"API_URL"`
	CallbackPort   int    `envconfig:"CALLBACK_PORT"`
}

// LoadEnvConfig loads configuration from environment variables
func LoadEnvConfig() (*EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (e *EnvConfig) toConfig() *Config {
	return &Config{
		AuthServiceURL: e.AuthServiceURL,
		KeycloakURL:    e.KeycloakURL,
		Realm:          e.Realm,
		ClientID:       e.ClientID,
		APIURL:         e.APIURL,
		CallbackPort:   e.CallbackPort,
	}
}

// LoadConfig resolves the effective configuration: environment, then the
// config file, then the defaults.
func LoadConfig(store ConfigStore) (*Config, error) {
	env, err := LoadEnvConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	file, err := loadOrEmpty(store)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := env.toConfig()
	cfg.merge(file)
	cfg.merge(DefaultConfig())
	cfg.Session = file.Session

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
