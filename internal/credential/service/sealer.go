package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"

	apperrors "github.com/allisson/hawkpair/internal/errors"
)

// keeperSealer seals secret keys with a gocloud.dev secrets.Keeper.
type keeperSealer struct {
	keeper *secrets.Keeper
}

// OpenSecretSealer opens a sealer for keyURI. Supported schemes: gcpkms://, awskms://,
// azurekeyvault://, hashivault://, base64key://. An empty keyURI yields a sealer that
// stores secret keys as-is.
func OpenSecretSealer(ctx context.Context, keyURI string) (SecretSealer, error) {
	if keyURI == "" {
		return NewPlainSecretSealer(), nil
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return NewKeeperSecretSealer(keeper), nil
}

// NewKeeperSecretSealer wraps an already opened keeper. The sealer owns the keeper.
func NewKeeperSecretSealer(keeper *secrets.Keeper) SecretSealer {
	return &keeperSealer{keeper: keeper}
}

func (s *keeperSealer) Seal(ctx context.Context, secretKey string) (string, error) {
	ciphertext, err := s.keeper.Encrypt(ctx, []byte(secretKey))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to seal secret key")
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (s *keeperSealer) Open(ctx context.Context, sealed string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to decode sealed secret key")
	}
	plaintext, err := s.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to open secret key")
	}
	return string(plaintext), nil
}

func (s *keeperSealer) Close() error {
	return s.keeper.Close()
}

// plainSealer stores secret keys unchanged.
type plainSealer struct{}

// NewPlainSecretSealer returns a SecretSealer that performs no transformation.
func NewPlainSecretSealer() SecretSealer {
	return plainSealer{}
}

func (plainSealer) Seal(_ context.Context, secretKey string) (string, error) { return secretKey, nil }

func (plainSealer) Open(_ context.Context, sealed string) (string, error) { return sealed, nil }

func (plainSealer) Close() error { return nil }
