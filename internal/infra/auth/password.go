// Package auth provides bcrypt password hashing for the shared login password.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/runoshun/bugtrack/internal/domain"
)

// DefaultCost is the bcrypt cost used for new hashes.
const DefaultCost = 12

// Hasher hashes passwords with bcrypt.
type Hasher struct {
	Cost int // bcrypt cost; zero selects DefaultCost
}

// Hash returns the bcrypt hash of password.
func (h Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", domain.ErrEmptyPassword
	}
	cost := h.Cost
	if cost == 0 {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// HashVerifier accepts passwords matching a bcrypt hash.
type HashVerifier struct {
	hash []byte
}

// NewHashVerifier parses a bcrypt hash.
func NewHashVerifier(hash string) (*HashVerifier, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidHash, err)
	}
	return &HashVerifier{hash: []byte(hash)}, nil
}

// Verify reports whether password matches the hash.
func (v *HashVerifier) Verify(password string) bool {
	err := bcrypt.CompareHashAndPassword(v.hash, []byte(password))
	return err == nil
}

// NewVerifier returns the verifier for the [auth] settings.
// A password hash takes precedence over the plain shared password.
func NewVerifier(cfg domain.AuthConfig) (domain.PasswordVerifier, error) {
	if cfg.PasswordHash == "" {
		return domain.SharedPassword(cfg.Password), nil
	}
	return NewHashVerifier(cfg.PasswordHash)
}

var (
	_ domain.PasswordHasher   = Hasher{}
	_ domain.PasswordVerifier = (*HashVerifier)(nil)
)
