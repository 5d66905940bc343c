package auth

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/auth"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/bionicpro"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/pkce"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/verifier"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

// newTestSession wires a real provider over the given gateway.
func newTestSession(t *testing.T, gateway auth.Gateway, store verifier.Store, nav auth.Navigator) *bionicpro.Session {
	t.Helper()
	cfg := bionicpro.DefaultConfig()
	cfg.CallbackPort = freePort(t)

	return &bionicpro.Session{
		Config:  cfg,
		Gateway: gateway,
		Provider: auth.NewProvider(
			gateway,
			&auth.Initiator{Config: cfg.AuthorizeConfig(), Store: store, Navigator: nav},
			&auth.CallbackHandler{Store: store, Exchanger: gateway, RedirectURI: cfg.RedirectURI()},
		),
	}
}

// factoryFor returns a SessionFactory handing out session and recording the options.
func factoryFor(session *bionicpro.Session, opts *bionicpro.SessionOptions) bionicpro.SessionFactory {
	return func(_ bionicpro.ConfigStore, o bionicpro.SessionOptions) (*bionicpro.Session, error) {
		if opts != nil {
			*opts = o
		}
		return session, nil
	}
}

func verifierOf(s string) pkce.Verifier { return pkce.Verifier(s) }

func runOperation(_ string, operation func() error) error {
	return operation()
}
