package bionicpro

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/auth"
)

const (
	DefaultAuthServiceURL = "http://localhost:8081"
	DefaultKeycloakURL    = "http://localhost:8080"
	DefaultRealm          = "reports-realm"
	DefaultClientID       = "reports-frontend"
	DefaultAPIURL         = "http://localhost:8000"
	DefaultCallbackPort   = 3000
)

// NewLoginError returns an error with login instructions for the given message.
func NewLoginError(msg string) error {
	return fmt.Errorf("%s - please run 'bionicpro auth login' first", msg)
}

// Config represents the bionicpro configuration file structure.
type Config struct {
	AuthServiceURL string  `json:"authServiceUrl,omitempty" yaml:"authServiceUrl,omitempty"`
	KeycloakURL    string  `json:"keycloakUrl,omitempty" yaml:"keycloakUrl,omitempty"`
	Realm          string  `json:"realm,omitempty" yaml:"realm,omitempty"`
	ClientID       string  `json:"clientId,omitempty" yaml:"clientId,omitempty"`
	APIURL         string  `json:"apiUrl,omitempty" yaml:"apiUrl,omitempty"`
	CallbackPort   int     `json:"callbackPort,omitempty" yaml:"callbackPort,omitempty"`
	Session        Session `json:"session,omitempty" yaml:"session,omitempty"`
}

// Session holds the auth service cookies between runs.
type Session struct {
	Cookies []Cookie `json:"cookies,omitempty" yaml:"cookies,omitempty"`
}

// Cookie is the persisted form of an http.Cookie.
type Cookie struct {
	Name     string    `json:"name" yaml:"name"`
	Value    string    `json:"value" yaml:"value"`
	Path     string    `json:"path,omitempty" yaml:"path,omitempty"`
	Expires  time.Time `json:"expires,omitempty" yaml:"expires,omitempty"`
	HttpOnly bool      `json:"httpOnly,omitempty" yaml:"httpOnly,omitempty"`
	Secure   bool      `json:"secure,omitempty" yaml:"secure,omitempty"`
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() *Config {
	return &Config{
		AuthServiceURL: DefaultAuthServiceURL,
		KeycloakURL:    DefaultKeycloakURL,
		Realm:          DefaultRealm,
		ClientID:       DefaultClientID,
		APIURL:         DefaultAPIURL,
		CallbackPort:   DefaultCallbackPort,
	}
}

// Validate ensures every endpoint is an http(s) URL and the port is usable.
func (c *Config) Validate() error {
	for name, endpoint := range map[string]string{
		"authServiceUrl": c.AuthServiceURL,
		"keycloakUrl":    c.KeycloakURL,
		"apiUrl":         c.APIURL,
	} {
		if err := ValidateEndpointURL(endpoint); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	if c.Realm == "" {
		return fmt.Errorf("realm is required")
	}
	if c.ClientID == "" {
		return fmt.Errorf("clientId is required")
	}
	if c.CallbackPort < 1 || c.CallbackPort > 65535 {
		return fmt.Errorf("callbackPort must be between 1 and 65535")
	}
	return nil
}

// Origin is the address the callback page is served from.
func (c *Config) Origin() string {
	return "http://localhost:" + strconv.Itoa(c.CallbackPort)
}

// RedirectURI returns the registered redirect URI for the origin.
func (c *Config) RedirectURI() string {
	return auth.RedirectURI(c.Origin())
}

// AuthorizeConfig returns the authorization endpoint settings.
func (c *Config) AuthorizeConfig() auth.AuthorizeConfig {
	return auth.AuthorizeConfig{
		KeycloakURL: c.KeycloakURL,
		Realm:       c.Realm,
		ClientID:    c.ClientID,
		RedirectURI: c.RedirectURI(),
	}
}

// HTTPCookies returns the persisted session cookies.
func (s Session) HTTPCookies() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(s.Cookies))
	for _, c := range s.Cookies {
		out = append(out, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Expires:  c.Expires,
			HttpOnly: c.HttpOnly,
			Secure:   c.Secure,
		})
	}
	return out
}

// SetHTTPCookies replaces the persisted session cookies.
func (s *Session) SetHTTPCookies(cookies []*http.Cookie) {
	s.Cookies = nil
	for _, c := range cookies {
		s.Cookies = append(s.Cookies, Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Expires:  c.Expires,
			HttpOnly: c.HttpOnly,
			Secure:   c.Secure,
		})
	}
}

// merge fills the empty fields of c from other.
func (c *Config) merge(other *Config) {
	if c.AuthServiceURL == "" {
		c.AuthServiceURL = other.AuthServiceURL
	}
	if c.KeycloakURL == "" {
		c.KeycloakURL = other.KeycloakURL
	}
	if c.Realm == "" {
		c.Realm = other.Realm
	}
	if c.ClientID == "" {
		c.ClientID = other.ClientID
	}
	if c.APIURL == "" {
		c.APIURL = other.APIURL
	}
	if c.CallbackPort == 0 {
		c.CallbackPort = other.CallbackPort
	}
}
