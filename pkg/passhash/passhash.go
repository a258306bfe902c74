package passhash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength = 16
	keyLength  = 32
	iterations = 100_000
)

// Hash derives a password credential from a fresh random salt using
// PBKDF2-HMAC-SHA256 and returns it as base64(salt||key).
func Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)
	return base64.StdEncoding.EncodeToString(append(salt, key...)), nil
}

// Verify recomputes the derivation with the stored salt and compares
// it against the stored key in constant time. A malformed credential
// is a verification failure, not an error.
func Verify(password, credential string) bool {
	data, err := base64.StdEncoding.DecodeString(credential)
	if err != nil || len(data) != saltLength+keyLength {
		return false
	}
	salt, expected := data[:saltLength], data[saltLength:]
	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)
	return subtle.ConstantTimeCompare(expected, key) == 1
}
