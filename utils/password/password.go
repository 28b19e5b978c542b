// Package password derives and checks stored credential hashes.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a plaintext password into its stored form and checks a
// candidate against a stored hash.
type Hasher interface {
	Hash(password string) (string, error)
	Matches(hash, password string) bool
}

const (
	SHA256 = "sha256"
	BCrypt = "bcrypt"
)

// New returns the hasher registered under name.
func New(name string) (Hasher, error) {
	switch name {
	case SHA256:
		return SHA256Hasher{}, nil
	case BCrypt:
		return BCryptHasher{Cost: bcrypt.DefaultCost}, nil
	}
	return nil, fmt.Errorf("unknown password hasher %q", name)
}

// SHA256Hasher stores the hex SHA-256 of the raw password bytes. It is
// unsalted and fast; it exists so hashes written by the storefront's legacy
// backend keep verifying.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Matches(hash, password string) bool {
	candidate, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(hash), []byte(candidate)) == 1
}

// BCryptHasher is the salted, slow alternative.
type BCryptHasher struct {
	Cost int
}

func (h BCryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BCryptHasher) Matches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
