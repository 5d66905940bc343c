// Package pkce generates Proof Key for Code Exchange material (RFC 7636).
package pkce

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

const (
	// MethodS256 is the only challenge method this client sends.
	MethodS256 = "S256"

	// verifierBytes is the amount of entropy drawn for each verifier.
	verifierBytes = 32
)

// ErrCryptoUnavailable is returned when the secure random source cannot be read.
var ErrCryptoUnavailable = errors.New("secure random source unavailable")

// Verifier is a URL-safe base64 (unpadded) encoded code verifier.
type Verifier string

// Challenge is the S256 transform of a Verifier.
type Challenge string

// Pair holds a verifier together with its derived challenge.
type Pair struct {
	Verifier  Verifier
	Challenge Challenge
	Method    string
}

// Generator produces verifiers from Rand, which defaults to crypto/rand.
type Generator struct {
	Rand io.Reader
}

// DefaultGenerator reads from crypto/rand.
var DefaultGenerator = &Generator{}

// GenerateVerifier draws a verifier from crypto/rand.
func GenerateVerifier() (Verifier, error) {
	return DefaultGenerator.GenerateVerifier()
}

// NewPair generates a verifier and derives its challenge.
func NewPair() (*Pair, error) {
	return DefaultGenerator.NewPair()
}

// GenerateVerifier draws 32 random bytes and encodes them without padding.
func (g *Generator) GenerateVerifier() (Verifier, error) {
	r := g.Rand
	if r == nil {
		r = rand.Reader
	}

	b := make([]byte, verifierBytes)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("%w: %w", ErrCryptoUnavailable, err)
	}

	return Verifier(base64.RawURLEncoding.EncodeToString(b)), nil
}

// NewPair generates a verifier and derives its challenge.
func (g *Generator) NewPair() (*Pair, error) {
	v, err := g.GenerateVerifier()
	if err != nil {
		return nil, err
	}

	return &Pair{
		Verifier:  v,
		Challenge: DeriveChallenge(v),
		Method:    MethodS256,
	}, nil
}

// DeriveChallenge computes BASE64URL(SHA256(verifier)).
func DeriveChallenge(v Verifier) Challenge {
	h := sha256.Sum256([]byte(v))
	return Challenge(base64.RawURLEncoding.EncodeToString(h[:]))
}
