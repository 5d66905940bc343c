package bionicpro

import (
	"fmt"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/api"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/auth"
	bphttp "github.com/PisklovCor/architecture-pro-bionicpro/internal/http"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/report"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/verifier"
)

// SessionOptions tune how a Session talks to the user.
type SessionOptions struct {
	// PersistVerifier keeps the pending verifier on disk so that a later
	// process can complete the login.
	PersistVerifier bool
	// Navigator overrides the default browser navigator.
	Navigator auth.Navigator
}

// Session wires the client-side auth stack for one process.
type Session struct {
	Config   *Config
	Gateway  auth.Gateway
	Provider *auth.Provider
	Reports  report.ReportFetcher
}

// SessionFactory creates a Session; commands receive it through kong bindings.
type SessionFactory func(cfg ConfigStore, opts SessionOptions) (*Session, error)

// NewSession loads the effective configuration and builds the auth provider,
// its cookie-carrying gateway and the reports client.
func NewSession(cfg ConfigStore, opts SessionOptions) (*Session, error) {
	config, err := LoadConfig(cfg)
	if err != nil {
		return nil, err
	}

	jar, err := bphttp.NewPersistentJar(config.AuthServiceURL, NewCookieStoreAdapter(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	authHTTP, err := bphttp.NewClient(config.AuthServiceURL, bphttp.NewCookieClient(jar))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	gateway := auth.NewSessionClient(authHTTP, jar)

	var store verifier.Store = verifier.NewMemoryStore()
	if opts.PersistVerifier {
		store = verifier.NewFileStore()
	}

	nav := opts.Navigator
	if nav == nil {
		nav = auth.BrowserNavigator{}
	}

	initiator := &auth.Initiator{
		Config:    config.AuthorizeConfig(),
		Store:     store,
		Navigator: nav,
	}
	callback := &auth.CallbackHandler{
		Store:       store,
		Exchanger:   gateway,
		RedirectURI: config.RedirectURI(),
	}

	apiHTTP, err := bphttp.NewClient(config.APIURL, bphttp.DefaultClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &Session{
		Config:   config,
		Gateway:  gateway,
		Provider: auth.NewProvider(gateway, initiator, callback),
		Reports:  api.NewClient(apiHTTP),
	}, nil
}

// Downloader returns a report downloader bound to the session.
func (s *Session) Downloader() *report.Downloader {
	return &report.Downloader{
		State:   s.Provider,
		Tokens:  s.Provider,
		Reports: s.Reports,
	}
}
