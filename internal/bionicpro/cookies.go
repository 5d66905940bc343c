package bionicpro

import (
	"net/http"

	bphttp "github.com/PisklovCor/architecture-pro-bionicpro/internal/http"
)

var _ bphttp.CookieStore = (*CookieStoreAdapter)(nil)

// CookieStoreAdapter adapts ConfigStore to http.CookieStore
type CookieStoreAdapter struct {
	cfg ConfigStore
}

// NewCookieStoreAdapter creates a new cookie store adapter
func NewCookieStoreAdapter(cfg ConfigStore) *CookieStoreAdapter {
	return &CookieStoreAdapter{cfg: cfg}
}

// LoadCookies implements http.CookieStore
func (a *CookieStoreAdapter) LoadCookies() ([]*http.Cookie, error) {
	config, err := loadOrEmpty(a.cfg)
	if err != nil {
		return nil, err
	}
	return config.Session.HTTPCookies(), nil
}

// SaveCookies implements http.CookieStore. Only the session part of the file
// changes, environment overrides are never written back.
func (a *CookieStoreAdapter) SaveCookies(cookies []*http.Cookie) error {
	config, err := loadOrEmpty(a.cfg)
	if err != nil {
		return err
	}

	config.Session.SetHTTPCookies(cookies)

	return a.cfg.Save(config)
}
