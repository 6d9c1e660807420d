package usecase

import (
	"context"
	"strings"

	"github.com/runoshun/bugtrack/internal/domain"
)

// HashPasswordInput contains the password to hash.
type HashPasswordInput struct {
	Password string
}

// HashPasswordOutput contains the value for [auth] password_hash.
type HashPasswordOutput struct {
	Hash string
}

// HashPassword produces a password hash for the config file.
type HashPassword struct {
	hasher domain.PasswordHasher
}

// NewHashPassword creates a new HashPassword use case.
func NewHashPassword(hasher domain.PasswordHasher) *HashPassword {
	return &HashPassword{hasher: hasher}
}

// Execute hashes the password. Surrounding whitespace is kept; a blank password is rejected.
func (uc *HashPassword) Execute(_ context.Context, in HashPasswordInput) (*HashPasswordOutput, error) {
	if strings.TrimSpace(in.Password) == "" {
		return nil, domain.ErrEmptyPassword
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	return &HashPasswordOutput{Hash: hash}, nil
}
