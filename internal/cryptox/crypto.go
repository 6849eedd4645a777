// Package cryptox derives password verifiers for local accounts.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

const SaltSize = 32

func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

func DeriveMasterKey(password []byte, salt []byte) []byte {
	x := argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
	return x
}

// NewSalt returns SaltSize random bytes.
func NewSalt() ([]byte, error) {
	b := make([]byte, SaltSize)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// NewVerifier derives the verifier stored for password.
func NewVerifier(password, salt []byte) []byte {
	return MakeVerifier(DeriveMasterKey(password, salt))
}

// CheckPassword reports whether password matches the stored salt and verifier.
func CheckPassword(password, salt, verifier []byte) bool {
	candidate := NewVerifier(password, salt)
	return subtle.ConstantTimeCompare(verifier, candidate) == 1
}
