package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashSecretKey returns the SHA-256 hex digest used as the secret-key lookup index
// by durable backends, so the index column never holds the secret itself.
func HashSecretKey(secretKey string) string {
	hash := sha256.Sum256([]byte(secretKey))
	return hex.EncodeToString(hash[:])
}
