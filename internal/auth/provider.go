package auth

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/pterm/pterm"
)

// Status is the authentication state of the client.
type Status int

const (
	// StatusLoading holds until the first session check or exchange resolves.
	StatusLoading Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// StateReader is the read-only view of the authentication state handed to consumers.
type StateReader interface {
	Status() Status
	Authenticated() bool
	// Wait blocks until the state leaves StatusLoading.
	Wait(ctx context.Context) (Status, error)
}

// TokenSource yields a bearer token per protected request.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, bool)
}

var (
	_ StateReader = (*Provider)(nil)
	_ TokenSource = (*Provider)(nil)
)

// Provider owns the authentication state and is its only writer.
//
// A session check result is applied only if no exchange or logout resolved
// while it was in flight, so a slow startup check can never override the
// outcome of a callback exchange on the same page load.
type Provider struct {
	gateway   Gateway
	initiator *Initiator
	callback  *CallbackHandler

	mu       sync.Mutex
	status   Status
	epoch    uint64
	watchers []func(Status)

	ready     chan struct{}
	readyOnce sync.Once
}

// NewProvider creates a Provider in StatusLoading.
func NewProvider(gateway Gateway, initiator *Initiator, callback *CallbackHandler) *Provider {
	return &Provider{
		gateway:   gateway,
		initiator: initiator,
		callback:  callback,
		status:    StatusLoading,
		ready:     make(chan struct{}),
	}
}

// Status implements StateReader.
func (p *Provider) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Authenticated implements StateReader.
func (p *Provider) Authenticated() bool {
	return p.Status() == StatusAuthenticated
}

// Wait implements StateReader.
func (p *Provider) Wait(ctx context.Context) (Status, error) {
	select {
	case <-p.ready:
		return p.Status(), nil
	case <-ctx.Done():
		return StatusLoading, ctx.Err()
	}
}

// Watch registers fn to be called after every state change.
func (p *Provider) Watch(fn func(Status)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.watchers = append(p.watchers, fn)
}

// Start runs the startup session check.
func (p *Provider) Start(ctx context.Context) Status {
	p.mu.Lock()
	epoch := p.epoch
	p.mu.Unlock()

	status := StatusUnauthenticated
	if p.gateway.CheckSession(ctx) {
		status = StatusAuthenticated
	}

	if !p.apply(status, false, &epoch, nil) {
		pterm.Debug.Println("discarding stale session check result")
		return p.Status()
	}
	return status
}

// HandleCallback runs the callback handler for location and applies its result.
// Ignored page loads leave the state untouched. A callback without a stored
// verifier is a duplicate or stale delivery and does not end an established
// session.
func (p *Provider) HandleCallback(ctx context.Context, location *url.URL) (*CallbackOutcome, error) {
	out, err := p.callback.Handle(ctx, location)
	if err != nil {
		if errors.Is(err, ErrVerifierMissing) {
			p.downgrade()
		} else {
			p.set(StatusUnauthenticated, true)
		}
		return nil, err
	}

	if out.Result == CallbackAuthenticated {
		p.set(StatusAuthenticated, true)
	}
	return out, nil
}

// Login starts a new authorization round trip.
func (p *Provider) Login(ctx context.Context) error {
	return p.initiator.Login(ctx)
}

// Logout invalidates the backend session. The local state becomes
// unauthenticated even when the backend call fails; that error is returned
// for reporting only.
func (p *Provider) Logout(ctx context.Context) error {
	err := p.gateway.Logout(ctx)
	if err != nil {
		pterm.Debug.Printfln("logout request failed: %s", err)
	}
	p.set(StatusUnauthenticated, true)
	return err
}

// AccessToken implements TokenSource.
func (p *Provider) AccessToken(ctx context.Context) (string, bool) {
	return p.gateway.FetchAccessToken(ctx)
}

func (p *Provider) set(status Status, authoritative bool) {
	p.apply(status, authoritative, nil, nil)
}

// downgrade moves to StatusUnauthenticated unless the state is already
// StatusAuthenticated.
func (p *Provider) downgrade() {
	keep := func(current Status) bool { return current == StatusAuthenticated }
	if !p.apply(StatusUnauthenticated, true, nil, keep) {
		pterm.Debug.Println("keeping authenticated state after a callback without verifier")
	}
}

// apply sets status unless since is given and an authoritative change
// (exchange or logout) happened after it was read, or keep reports true for
// the current status. Authoritative changes advance the epoch.
func (p *Provider) apply(status Status, authoritative bool, since *uint64, keep func(Status) bool) bool {
	p.mu.Lock()
	if since != nil && *since != p.epoch {
		p.mu.Unlock()
		return false
	}
	if keep != nil && keep(p.status) {
		p.mu.Unlock()
		return false
	}
	if authoritative {
		p.epoch++
	}
	p.status = status
	watchers := make([]func(Status), len(p.watchers))
	copy(watchers, p.watchers)
	p.mu.Unlock()

	p.readyOnce.Do(func() { close(p.ready) })

	for _, fn := range watchers {
		fn(status)
	}
	return true
}
