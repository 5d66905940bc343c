// Package verifier holds the single PKCE verifier of an in-flight authorization attempt.
package verifier

import (
	"errors"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/pkce"
)

// ErrNotFound is returned by Retrieve and Take when no verifier is stored.
var ErrNotFound = errors.New("no code verifier stored")

// Store is a single slot. Store overwrites any previous verifier.
type Store interface {
	Store(v pkce.Verifier) error
	Retrieve() (pkce.Verifier, error)
	// Take returns the verifier and empties the slot in one step. Of two
	// concurrent callers at most one gets the verifier.
	Take() (pkce.Verifier, error)
	Clear() error
}
