package authsvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/pterm/pterm"
)

// Service implements the session operations behind the HTTP handlers.
type Service struct {
	tokens   TokenProvider
	sessions *SessionManager
	logger   *pterm.Logger
}

// NewService creates a Service.
func NewService(tokens TokenProvider, sessions *SessionManager, logger *pterm.Logger) *Service {
	return &Service{tokens: tokens, sessions: sessions, logger: logger}
}

// Authenticate exchanges the code and opens a session.
func (s *Service) Authenticate(ctx context.Context, code, verifier, redirectURI string) (string, error) {
	tok, err := s.tokens.Exchange(ctx, code, verifier, redirectURI)
	logins.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		s.logger.Error("authentication failed", s.logger.Args("error", err))
		return "", fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	id, err := s.sessions.Create(ctx, tok.AccessToken, tok.RefreshToken)
	if err != nil {
		s.logger.Error("failed to create session", s.logger.Args("error", err))
		return "", fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	return id, nil
}

// SessionInfo describes an active session.
type SessionInfo struct {
	SessionID string
	User      string
}

// Session returns the session of id, or ErrSessionNotFound.
func (s *Service) Session(ctx context.Context, id string) (*SessionInfo, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := UserFromToken(sess.AccessToken)
	if err != nil {
		s.logger.Debug("no user in access token", s.logger.Args("error", err))
	}
	return &SessionInfo{SessionID: id, User: user}, nil
}

// AccessToken returns a usable access token for the session. An expired
// token is refreshed in place. A token past half its lifetime rotates the
// session, and the returned ID then differs from id. A failed rotation
// falls back to the current token.
func (s *Service) AccessToken(ctx context.Context, id string) (token, sessionID string, err error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return "", "", err
	}

	switch {
	case s.sessions.AccessExpired(sess):
		tok, err := s.refresh(ctx, sess)
		if err != nil {
			return "", "", fmt.Errorf("%w: %w", ErrRefresh, err)
		}
		if err := s.sessions.Update(ctx, id, tok.AccessToken, tok.RefreshToken); err != nil {
			return "", "", fmt.Errorf("%w: %w", ErrRefresh, err)
		}
		return tok.AccessToken, id, nil

	case s.sessions.ShouldRotate(sess):
		newID, tok, err := s.rotate(ctx, sess)
		if err != nil {
			s.logger.Warn("failed to rotate session", s.logger.Args("error", err))
			return sess.AccessToken, id, nil
		}
		s.logger.Debug("rotated session", s.logger.Args("from", id, "to", newID))
		return tok, newID, nil
	}

	return sess.AccessToken, id, nil
}

// Refresh rotates the session unconditionally and returns the new ID.
func (s *Service) Refresh(ctx context.Context, id string) (string, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return "", err
	}

	newID, _, err := s.rotate(ctx, sess)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRefreshSession, err)
	}
	return newID, nil
}

// Logout deletes the session. Unknown IDs are not an error.
func (s *Service) Logout(ctx context.Context, id string) error {
	logouts.Inc()
	if err := s.sessions.Delete(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

func (s *Service) rotate(ctx context.Context, sess *Session) (string, string, error) {
	tok, err := s.refresh(ctx, sess)
	if err != nil {
		return "", "", err
	}
	newID, err := s.sessions.Rotate(ctx, sess.ID, tok.AccessToken, tok.RefreshToken)
	if err != nil {
		return "", "", err
	}
	return newID, tok.AccessToken, nil
}

func (s *Service) refresh(ctx context.Context, sess *Session) (*refreshedTokens, error) {
	tok, err := s.tokens.Refresh(ctx, sess.RefreshToken)
	tokenRefreshes.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		return nil, err
	}

	refreshToken := tok.RefreshToken
	if refreshToken == "" {
		refreshToken = sess.RefreshToken
	}
	return &refreshedTokens{AccessToken: tok.AccessToken, RefreshToken: refreshToken}, nil
}

type refreshedTokens struct {
	AccessToken  string
	RefreshToken string
}
