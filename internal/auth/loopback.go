package auth

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/pterm/pterm"
)

//go:embed pages/callback.html
var pages embed.FS

var callbackPage = template.Must(template.ParseFS(pages, "pages/callback.html"))

// CallbackProcessor handles a callback page load. Provider implements it.
type CallbackProcessor interface {
	HandleCallback(ctx context.Context, location *url.URL) (*CallbackOutcome, error)
}

// CallbackEvent reports the result of a callback page load that carried an
// authorization response.
type CallbackEvent struct {
	Outcome *CallbackOutcome
	Err     error
}

// LoopbackServer serves the redirect target on localhost. Each request to
// CallbackPath is one page load of the callback page.
type LoopbackServer struct {
	processor CallbackProcessor
	server    *http.Server
	listener  net.Listener
	events    chan CallbackEvent
}

type pageData struct {
	Title    string
	Message  string
	Error    string
	Location string
}

// NewLoopbackServer creates a server that forwards callbacks to processor.
func NewLoopbackServer(processor CallbackProcessor) *LoopbackServer {
	s := &LoopbackServer{
		processor: processor,
		events:    make(chan CallbackEvent, 4),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(CallbackPath, s.handleCallback)
	mux.HandleFunc("/", s.handleLanding)

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Listen binds the server to localhost:port and starts serving.
func (s *LoopbackServer) Listen(port int) error {
	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	if err != nil {
		return fmt.Errorf("failed to start callback server on port %d: %w", port, err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			pterm.Debug.Printfln("callback server stopped: %s", err)
		}
	}()
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *LoopbackServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Events delivers the outcome of every callback page load that carried a code or an error.
func (s *LoopbackServer) Events() <-chan CallbackEvent {
	return s.events
}

// Handler exposes the routes for tests.
func (s *LoopbackServer) Handler() http.Handler {
	return s.server.Handler
}

// Shutdown stops the server.
func (s *LoopbackServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// WaitForCallback blocks until a callback resolves, ctx ends or timeout elapses.
func (s *LoopbackServer) WaitForCallback(ctx context.Context, timeout time.Duration) (*CallbackOutcome, error) {
	if timeout <= 0 {
		timeout = defaultAuthTimeout
	}

	select {
	case ev := <-s.events:
		return ev.Outcome, ev.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(timeout):
		return nil, fmt.Errorf("authentication timeout after %s", timeout)
	}
}

func (s *LoopbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	location := &url.URL{
		Scheme:   "http",
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
	}

	// the verifier is already consumed once the exchange starts, so a browser
	// that drops the connection must not cancel it
	out, err := s.processor.HandleCallback(context.WithoutCancel(r.Context()), location)
	switch {
	case err != nil:
		s.render(w, http.StatusBadRequest, pageData{
			Title: "Authentication failed",
			Error: err.Error(),
		})
		s.publish(CallbackEvent{Err: err})
	case out.Result == CallbackAuthenticated:
		s.render(w, http.StatusOK, pageData{
			Title:    "Authentication successful",
			Message:  "You can close this window and return to the terminal.",
			Location: out.Location.RequestURI(),
		})
		s.publish(CallbackEvent{Outcome: out})
	default:
		s.handleLanding(w, r)
	}
}

func (s *LoopbackServer) handleLanding(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, pageData{
		Title:   "BionicPRO Reports",
		Message: "Nothing to do here. Return to the terminal.",
	})
}

func (s *LoopbackServer) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := callbackPage.Execute(w, data); err != nil {
		pterm.Debug.Printfln("failed to render callback page: %s", err)
	}
}

func (s *LoopbackServer) publish(ev CallbackEvent) {
	select {
	case s.events <- ev:
	default:
		pterm.Debug.Println("dropping callback event, no receiver")
	}
}
