package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/pkce"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/trace"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/verifier"
)

// Initiator starts an authorization code round trip.
type Initiator struct {
	Config    AuthorizeConfig
	Generator *pkce.Generator
	Store     verifier.Store
	Navigator Navigator
}

// Login stores a fresh verifier, overwriting any pending one, and navigates to
// the authorization endpoint with its S256 challenge.
func (i *Initiator) Login(ctx context.Context) error {
	_, span := trace.NewSpan(ctx, "auth.Login")
	defer span.End()

	gen := i.Generator
	if gen == nil {
		gen = pkce.DefaultGenerator
	}

	pair, err := gen.NewPair()
	if err != nil {
		if errors.Is(err, pkce.ErrCryptoUnavailable) {
			return trace.SpanError(span, fmt.Errorf("%w: %w", ErrCryptoUnavailable, err))
		}
		return trace.SpanError(span, err)
	}

	if err := i.Store.Store(pair.Verifier); err != nil {
		return trace.SpanError(span, fmt.Errorf("failed to store code verifier: %w", err))
	}

	if err := i.Navigator.Navigate(i.Config.AuthorizationURL(string(pair.Challenge))); err != nil {
		return trace.SpanError(span, fmt.Errorf("failed to navigate to identity provider: %w", err))
	}

	return nil
}
