package verifier

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/pkce"
)

const (
	// EnvVerifierPath overrides the location of the pending verifier file.
	EnvVerifierPath = "BIONICPRO_VERIFIER_PATH"

	// DefaultTTL bounds how long a manual login may take before its verifier is discarded.
	DefaultTTL = 10 * time.Minute
)

var _ Store = (*FileStore)(nil)

// FileStore persists the verifier between two CLI invocations of the same login attempt.
// Entries live in the temp directory and expire after TTL.
type FileStore struct {
	Path string
	TTL  time.Duration
	Now  func() time.Time
}

type pendingVerifier struct {
	Verifier  pkce.Verifier `yaml:"verifier"`
	CreatedAt time.Time     `yaml:"created_at"`
}

// NewFileStore returns a FileStore at the default location.
func NewFileStore() *FileStore {
	return &FileStore{Path: DefaultPath(), TTL: DefaultTTL}
}

// DefaultPath returns the per-user pending verifier path.
func DefaultPath() string {
	if path := os.Getenv(EnvVerifierPath); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), "bionicpro-"+strconv.Itoa(os.Getuid()), "pending-verifier")
}

// Store writes the verifier, replacing any pending one.
func (s *FileStore) Store(v pkce.Verifier) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create verifier directory: %w", err)
	}

	data, err := yaml.Marshal(pendingVerifier{Verifier: v, CreatedAt: s.now()})
	if err != nil {
		return fmt.Errorf("failed to marshal verifier: %w", err)
	}

	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write verifier file: %w", err)
	}
	return nil
}

// Retrieve returns the pending verifier. Expired entries are removed and reported as ErrNotFound.
func (s *FileStore) Retrieve() (pkce.Verifier, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read verifier file: %w", err)
	}

	v, err := s.parse(data)
	if errors.Is(err, errExpired) {
		_ = s.Clear()
		return "", ErrNotFound
	}
	return v, err
}

// Take claims the pending verifier by renaming the file before reading it.
// rename is atomic, so a concurrent Take sees os.ErrNotExist and reports
// ErrNotFound.
func (s *FileStore) Take() (pkce.Verifier, error) {
	claimed := fmt.Sprintf("%s.taken-%d-%d", s.Path, os.Getpid(), s.now().UnixNano())
	if err := os.Rename(s.Path, claimed); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to claim verifier file: %w", err)
	}
	defer func() { _ = os.Remove(claimed) }()

	data, err := os.ReadFile(claimed)
	if err != nil {
		return "", fmt.Errorf("failed to read verifier file: %w", err)
	}

	v, err := s.parse(data)
	if errors.Is(err, errExpired) {
		return "", ErrNotFound
	}
	return v, err
}

var errExpired = errors.New("verifier expired")

func (s *FileStore) parse(data []byte) (pkce.Verifier, error) {
	var pending pendingVerifier
	if err := yaml.Unmarshal(data, &pending); err != nil {
		return "", fmt.Errorf("failed to parse verifier file: %w", err)
	}

	if pending.Verifier == "" {
		return "", ErrNotFound
	}

	if s.TTL > 0 && s.now().Sub(pending.CreatedAt) > s.TTL {
		return "", errExpired
	}

	return pending.Verifier, nil
}

// Clear removes the pending verifier file.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove verifier file: %w", err)
	}
	return nil
}

func (s *FileStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
