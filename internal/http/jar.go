package http

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/pterm/pterm"
)

// CookieStore persists the cookies of one origin between runs.
type CookieStore interface {
	LoadCookies() ([]*http.Cookie, error)
	SaveCookies(cookies []*http.Cookie) error
}

var _ http.CookieJar = (*PersistentJar)(nil)

// PersistentJar is an in-memory cookie jar that mirrors the cookies of a
// single origin into a CookieStore, so a session survives process restarts.
type PersistentJar struct {
	mu      sync.Mutex
	jar     *cookiejar.Jar
	origin  *url.URL
	store   CookieStore
	cookies map[string]*http.Cookie
	now     func() time.Time
}

// NewPersistentJar creates a jar for origin and seeds it with the unexpired cookies in store.
func NewPersistentJar(origin string, store CookieStore) (*PersistentJar, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("invalid cookie origin: %w", err)
	}

	j := &PersistentJar{
		origin:  u,
		store:   store,
		cookies: map[string]*http.Cookie{},
		now:     time.Now,
	}
	if err := j.reset(); err != nil {
		return nil, err
	}

	saved, err := store.LoadCookies()
	if err != nil {
		return nil, fmt.Errorf("failed to load cookies: %w", err)
	}

	var live []*http.Cookie
	for _, c := range saved {
		if c == nil || j.expired(c) {
			continue
		}
		j.cookies[c.Name] = c
		live = append(live, c)
	}
	j.jar.SetCookies(u, live)

	return j, nil
}

// SetCookies implements http.CookieJar.
func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.jar.SetCookies(u, cookies)
	if u.Hostname() != j.origin.Hostname() {
		return
	}

	for _, c := range cookies {
		if c.MaxAge < 0 || j.expired(c) {
			delete(j.cookies, c.Name)
			continue
		}

		kept := &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Expires:  c.Expires,
			HttpOnly: c.HttpOnly,
			Secure:   c.Secure,
		}
		if c.MaxAge > 0 {
			kept.Expires = j.now().Add(time.Duration(c.MaxAge) * time.Second).UTC()
		}
		j.cookies[c.Name] = kept
	}

	if err := j.store.SaveCookies(j.snapshot()); err != nil {
		pterm.Debug.Printfln("failed to persist cookies: %s", err)
	}
}

// Cookies implements http.CookieJar.
func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar.Cookies(u)
}

// Clear forgets every cookie, in memory and in the store.
func (j *PersistentJar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.reset(); err != nil {
		return err
	}
	j.cookies = map[string]*http.Cookie{}

	if err := j.store.SaveCookies(nil); err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}
	return nil
}

func (j *PersistentJar) reset() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("failed to create cookie jar: %w", err)
	}
	j.jar = jar
	return nil
}

func (j *PersistentJar) expired(c *http.Cookie) bool {
	return !c.Expires.IsZero() && !c.Expires.After(j.now())
}

func (j *PersistentJar) snapshot() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(j.cookies))
	for _, c := range j.cookies {
		out = append(out, c)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}
