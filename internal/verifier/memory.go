package verifier

import (
	"sync"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/pkce"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps the verifier for the lifetime of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	verifier pkce.Verifier
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Store replaces the held verifier.
func (s *MemoryStore) Store(v pkce.Verifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifier = v
	return nil
}

// Retrieve returns the held verifier or ErrNotFound.
func (s *MemoryStore) Retrieve() (pkce.Verifier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.verifier == "" {
		return "", ErrNotFound
	}
	return s.verifier, nil
}

// Take returns the held verifier and drops it.
func (s *MemoryStore) Take() (pkce.Verifier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.verifier == "" {
		return "", ErrNotFound
	}
	v := s.verifier
	s.verifier = ""
	return v, nil
}

// Clear drops the held verifier.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifier = ""
	return nil
}
