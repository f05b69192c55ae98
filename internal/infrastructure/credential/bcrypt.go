// Package credential provides the password hashing used for user records.
package credential

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptMaxInput is the longest input bcrypt accepts.
const bcryptMaxInput = 72

// BcryptStore implements ports.CredentialStore with bcrypt. Passwords longer
// than bcrypt's 72-byte input limit are digested with SHA-256 first.
type BcryptStore struct {
	cost int
}

// NewBcryptStore returns a store using cost, or bcrypt.DefaultCost when cost
// is outside bcrypt's accepted range.
func NewBcryptStore(cost int) *BcryptStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptStore{cost: cost}
}

func (s *BcryptStore) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prepare(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (s *BcryptStore) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prepare(password)) == nil
}

func prepare(password string) []byte {
	if len(password) <= bcryptMaxInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte("sha256$" + base64.RawStdEncoding.EncodeToString(sum[:]))
}
