package service

import (
	"github.com/google/uuid"

	apperrors "github.com/allisson/hawkpair/internal/errors"
)

// uuidGenerator produces random (version 4) UUID strings for both halves of the pair.
type uuidGenerator struct{}

// NewCredentialGenerator creates a CredentialGenerator backed by crypto/rand UUIDv4 values.
func NewCredentialGenerator() CredentialGenerator {
	return &uuidGenerator{}
}

func (g *uuidGenerator) NewCredentialID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", apperrors.Wrap(err, "failed to generate credential id")
	}
	return id.String(), nil
}

func (g *uuidGenerator) NewSecretKey() (string, error) {
	key, err := uuid.NewRandom()
	if err != nil {
		return "", apperrors.Wrap(err, "failed to generate secret key")
	}
	return key.String(), nil
}
