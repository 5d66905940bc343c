package authsvc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

// Server owns the HTTP server and the session backend.
type Server struct {
	cfg     *Config
	http    *http.Server
	logger  *pterm.Logger
	closers []func() error
}

// NewServer wires the service from cfg. Sessions live in Redis when
// cfg.RedisAddr is set and in memory otherwise.
func NewServer(ctx context.Context, cfg *Config, tokens TokenProvider, logger *pterm.Logger) (*Server, error) {
	sealer, err := NewSealer(cfg.EncryptionKey)
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, logger: logger}

	var store SessionStore = NewMemoryStore()
	if cfg.RedisAddr != "" {
		redisStore, client, err := NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		store = redisStore
		s.closers = append(s.closers, client.Close)
	} else {
		logger.Warn(EnvPrefix + "_REDIS_ADDR is not set, sessions are kept in memory")
	}

	if tokens == nil {
		tokens = NewKeycloak(cfg, nil)
	}

	sessions := NewSessionManager(store, sealer, cfg.SessionTTL, cfg.AccessTTL, logger)
	handler := NewHandler(
		NewService(tokens, sessions, logger),
		rate.NewLimiter(rate.Limit(cfg.CallbackRate), cfg.CallbackBurst),
		cfg.SessionTTL,
		logger,
	)

	s.http = &http.Server{
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler exposes the routes for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run listens on cfg.Listen until ctx ends.
func (s *Server) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, l)
}

// Serve serves on l until ctx ends, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	defer s.close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("auth service listening", s.logger.Args("addr", l.Addr().String()))
		if err := s.http.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			s.logger.Warn("failed to close", s.logger.Args("error", err))
		}
	}
}
