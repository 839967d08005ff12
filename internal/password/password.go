// Package password stores and checks account credentials.
package password

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	ModePlain  = "plain"
	ModeBcrypt = "bcrypt"
)

// Hasher turns a submitted password into its stored form and checks a
// candidate against a stored value.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(stored, candidate string) bool
}

// New returns the hasher for a configured mode.
func New(mode string) (Hasher, error) {
	switch mode {
	case "", ModePlain:
		return Plain{}, nil
	case ModeBcrypt:
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hashing mode %q", mode)
	}
}

// Plain stores passwords as given and compares them exactly.
type Plain struct{}

func (Plain) Hash(password string) (string, error) { return password, nil }

func (Plain) Compare(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// Bcrypt stores bcrypt digests.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

func (Bcrypt) Compare(stored, candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate))
	return err == nil
}
