package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/pterm/pterm"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/trace"
	"github.com/PisklovCor/architecture-pro-bionicpro/internal/verifier"
)

// Exchanger trades an authorization code for a backend session.
type Exchanger interface {
	Exchange(ctx context.Context, req ExchangeRequest) error
}

// CallbackResult tells what a callback page load did.
type CallbackResult int

const (
	// CallbackIgnored is a page load that carried no authorization response.
	CallbackIgnored CallbackResult = iota
	// CallbackAuthenticated is a successful code exchange.
	CallbackAuthenticated
)

// CallbackOutcome is the result of handling one page load.
type CallbackOutcome struct {
	Result CallbackResult
	// Location is the URL the user agent should display afterwards.
	// On success it carries no query, so the code cannot be replayed.
	Location *url.URL
}

// CallbackHandler completes an authorization code round trip.
type CallbackHandler struct {
	Store       verifier.Store
	Exchanger   Exchanger
	RedirectURI string
}

// Handle processes the location of one page load. Only CallbackPath with a
// code parameter triggers an exchange. The stored verifier is taken before the
// exchange starts, so concurrent deliveries of the same callback exchange the
// code at most once and the rest fail with ErrVerifierMissing.
func (h *CallbackHandler) Handle(ctx context.Context, location *url.URL) (*CallbackOutcome, error) {
	ignored := &CallbackOutcome{Result: CallbackIgnored, Location: location}
	if location == nil || location.Path != CallbackPath {
		return ignored, nil
	}

	query := location.Query()
	code := query.Get("code")
	if code == "" {
		if idpErr := query.Get("error"); idpErr != "" {
			h.clear()
			msg := idpErr
			if desc := query.Get("error_description"); desc != "" {
				msg = fmt.Sprintf("%s - %s", idpErr, desc)
			}
			return nil, fmt.Errorf("%w: identity provider returned %s", ErrExchangeFailed, msg)
		}
		return ignored, nil
	}

	ctx, span := trace.NewSpan(ctx, "auth.HandleCallback")
	defer span.End()

	v, err := h.Store.Take()
	if err != nil {
		if errors.Is(err, verifier.ErrNotFound) {
			return nil, trace.SpanError(span, ErrVerifierMissing)
		}
		return nil, trace.SpanError(span, fmt.Errorf("%w: %w", ErrVerifierMissing, err))
	}

	err = h.Exchanger.Exchange(ctx, ExchangeRequest{
		Code:         code,
		CodeVerifier: string(v),
		RedirectURI:  h.RedirectURI,
	})
	if err != nil {
		pterm.Debug.Printfln("code exchange failed: %s", err)
		return nil, trace.SpanError(span, fmt.Errorf("%w: %w", ErrExchangeFailed, err))
	}

	clean := *location
	clean.RawQuery = ""
	clean.ForceQuery = false
	clean.Fragment = ""
	clean.RawFragment = ""

	return &CallbackOutcome{Result: CallbackAuthenticated, Location: &clean}, nil
}

func (h *CallbackHandler) clear() {
	if err := h.Store.Clear(); err != nil {
		pterm.Debug.Printfln("failed to clear code verifier: %s", err)
	}
}
