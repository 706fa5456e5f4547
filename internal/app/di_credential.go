package app

import (
	"context"
	"fmt"

	"github.com/allisson/hawkpair/internal/config"
	credentialHTTP "github.com/allisson/hawkpair/internal/credential/http"
	credentialRepository "github.com/allisson/hawkpair/internal/credential/repository"
	credentialService "github.com/allisson/hawkpair/internal/credential/service"
	credentialUseCase "github.com/allisson/hawkpair/internal/credential/usecase"
)

// SecretSealer returns the sealer protecting secret keys in durable credential stores.
func (c *Container) SecretSealer() (credentialService.SecretSealer, error) {
	err := c.lazy(&c.secretSealerInit, "secretSealer", func() (err error) {
		c.secretSealer, err = credentialService.OpenSecretSealer(context.Background(), c.config.KMSKeyURI)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.secretSealer, nil
}

// CredentialGenerator returns the generator for credential ids and secret keys.
func (c *Container) CredentialGenerator() credentialService.CredentialGenerator {
	c.credentialGeneratorInit.Do(func() {
		c.credentialGenerator = credentialService.NewCredentialGenerator()
	})
	return c.credentialGenerator
}

// CredentialRepository returns the credential store selected by CREDENTIAL_STORE.
func (c *Container) CredentialRepository() (credentialUseCase.CredentialRepository, error) {
	err := c.lazy(&c.credentialRepoInit, "credentialRepo", func() (err error) {
		c.credentialRepo, err = c.initCredentialRepository()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.credentialRepo, nil
}

// CredentialUseCase returns the credential engine, wrapped with metrics when enabled.
func (c *Container) CredentialUseCase() (credentialUseCase.CredentialUseCase, error) {
	err := c.lazy(&c.credentialUseCaseInit, "credentialUseCase", func() (err error) {
		c.credentialUseCase, err = c.initCredentialUseCase()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.credentialUseCase, nil
}

// SessionHandler returns the HTTP handler for login, logout and me.
func (c *Container) SessionHandler() (*credentialHTTP.SessionHandler, error) {
	err := c.lazy(&c.sessionHandlerInit, "sessionHandler", func() error {
		uc, err := c.CredentialUseCase()
		if err != nil {
			return fmt.Errorf("failed to get credential use case for session handler: %w", err)
		}
		c.sessionHandler = credentialHTTP.NewSessionHandler(uc, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.sessionHandler, nil
}

func (c *Container) initCredentialRepository() (credentialUseCase.CredentialRepository, error) {
	switch c.config.CredentialStore {
	case config.CredentialStoreMemory:
		return credentialRepository.NewMemoryCredentialRepository(), nil

	case config.CredentialStoreRedis:
		client, err := c.RedisClient()
		if err != nil {
			return nil, fmt.Errorf("failed to get redis client for credential repository: %w", err)
		}
		sealer, err := c.SecretSealer()
		if err != nil {
			return nil, fmt.Errorf("failed to get secret sealer for credential repository: %w", err)
		}
		return credentialRepository.NewRedisCredentialRepository(client, c.config.RedisKeyPrefix, sealer), nil

	case config.CredentialStoreDatabase:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for credential repository: %w", err)
		}
		sealer, err := c.SecretSealer()
		if err != nil {
			return nil, fmt.Errorf("failed to get secret sealer for credential repository: %w", err)
		}
		switch c.config.DBDriver {
		case "mysql":
			return credentialRepository.NewMySQLCredentialRepository(db, sealer), nil
		case "postgres":
			return credentialRepository.NewPostgreSQLCredentialRepository(db, sealer), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}

	default:
		return nil, fmt.Errorf("unsupported credential store: %s", c.config.CredentialStore)
	}
}

func (c *Container) initCredentialUseCase() (credentialUseCase.CredentialUseCase, error) {
	repo, err := c.CredentialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential repository for credential use case: %w", err)
	}

	accounts, err := c.AccountUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get account use case for credential use case: %w", err)
	}

	baseUseCase := credentialUseCase.NewCredentialUseCase(c.config, repo, accounts, c.CredentialGenerator())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for credential use case: %w", err)
		}
		return credentialUseCase.NewCredentialUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
