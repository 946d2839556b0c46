package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields      = errors.New("missing username or password")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const bcryptCost = 10

// Credentials holds the single configured administrator identity. The
// plaintext password is hashed once at construction and not retained.
type Credentials struct {
	username string
	hash     []byte
}

// NewCredentials hashes the configured admin password.
func NewCredentials(username, password string) (*Credentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	return &Credentials{username: username, hash: hash}, nil
}

// Verify checks a login attempt. Empty input fails with ErrMissingFields,
// any mismatch with ErrInvalidCredentials. The password comparison is
// constant-time via bcrypt.
func (c *Credentials) Verify(username, password string) error {
	if username == "" || password == "" {
		return ErrMissingFields
	}
	if username != c.username {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(c.hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
