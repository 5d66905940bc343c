package authsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
)

// Session is a decrypted session.
type Session struct {
	ID           string
	AccessToken  string
	RefreshToken string
	CreatedAt    time.Time
}

// SessionManager seals refresh tokens and tracks token age.
type SessionManager struct {
	store     SessionStore
	sealer    *Sealer
	ttl       time.Duration
	accessTTL time.Duration
	logger    *pterm.Logger
	now       func() time.Time
}

// NewSessionManager creates a manager. ttl bounds the session, accessTTL the
// access token kept inside it.
func NewSessionManager(store SessionStore, sealer *Sealer, ttl, accessTTL time.Duration, logger *pterm.Logger) *SessionManager {
	return &SessionManager{
		store:     store,
		sealer:    sealer,
		ttl:       ttl,
		accessTTL: accessTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// Create stores a new session and returns its ID.
func (m *SessionManager) Create(ctx context.Context, accessToken, refreshToken string) (string, error) {
	id := uuid.NewString()
	if err := m.put(ctx, id, accessToken, refreshToken, m.ttl); err != nil {
		return "", err
	}
	m.logger.Debug("created session", m.logger.Args("session", id))
	return id, nil
}

// Get loads and decrypts a session.
func (m *SessionManager) Get(ctx context.Context, id string) (*Session, error) {
	stored, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	refresh, err := m.sealer.Open(stored.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open refresh token: %w", err)
	}

	return &Session{
		ID:           id,
		AccessToken:  stored.AccessToken,
		RefreshToken: refresh,
		CreatedAt:    stored.CreatedAt,
	}, nil
}

// Update replaces the tokens of id and keeps its remaining lifetime.
func (m *SessionManager) Update(ctx context.Context, id, accessToken, refreshToken string) error {
	ttl, err := m.store.TTL(ctx, id)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = m.ttl
	}
	if err := m.put(ctx, id, accessToken, refreshToken, ttl); err != nil {
		return err
	}
	m.logger.Debug("updated session", m.logger.Args("session", id))
	return nil
}

// Rotate replaces oldID with a new session holding the given tokens.
func (m *SessionManager) Rotate(ctx context.Context, oldID, accessToken, refreshToken string) (string, error) {
	if err := m.Delete(ctx, oldID); err != nil {
		return "", err
	}
	id, err := m.Create(ctx, accessToken, refreshToken)
	if err != nil {
		return "", err
	}
	sessionRotations.Inc()
	return id, nil
}

// Delete removes the session.
func (m *SessionManager) Delete(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	m.logger.Debug("deleted session", m.logger.Args("session", id))
	return nil
}

// AccessExpired reports whether the access token outlived accessTTL.
func (m *SessionManager) AccessExpired(s *Session) bool {
	return m.now().Sub(s.CreatedAt) >= m.accessTTL
}

// ShouldRotate reports whether half of accessTTL has passed.
func (m *SessionManager) ShouldRotate(s *Session) bool {
	return m.now().Sub(s.CreatedAt) >= m.accessTTL/2
}

func (m *SessionManager) put(ctx context.Context, id, accessToken, refreshToken string, ttl time.Duration) error {
	sealed, err := m.sealer.Seal(refreshToken)
	if err != nil {
		return fmt.Errorf("failed to seal refresh token: %w", err)
	}
	return m.store.Put(ctx, id, StoredSession{
		AccessToken:  accessToken,
		RefreshToken: sealed,
		CreatedAt:    m.now(),
	}, ttl)
}
