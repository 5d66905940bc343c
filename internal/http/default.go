package http

import (
	"net/http"
	"time"
)

// defaultTimeout bounds every request made by the CLI.
const defaultTimeout = 30 * time.Second

// DefaultClient is the default HTTP client with reasonable timeout
var DefaultClient = &http.Client{
	Timeout: defaultTimeout,
}

// NewCookieClient returns a client that sends and records cookies through jar,
// the equivalent of a browser fetch with credentials included.
func NewCookieClient(jar http.CookieJar) *http.Client {
	return &http.Client{
		Timeout: defaultTimeout,
		Jar:     jar,
	}
}
