package app

import (
	"fmt"

	accountRepository "github.com/allisson/hawkpair/internal/account/repository"
	accountUseCase "github.com/allisson/hawkpair/internal/account/usecase"
)

// AccountRepository returns the account repository for the configured database driver.
func (c *Container) AccountRepository() (accountUseCase.AccountRepository, error) {
	err := c.lazy(&c.accountRepoInit, "accountRepo", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for account repository: %w", err)
		}
		switch c.config.DBDriver {
		case "mysql":
			c.accountRepo = accountRepository.NewMySQLAccountRepository(db)
		case "postgres":
			c.accountRepo = accountRepository.NewPostgreSQLAccountRepository(db)
		default:
			return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.accountRepo, nil
}

// ProfileRepository returns the profile repository for the configured database driver.
func (c *Container) ProfileRepository() (accountUseCase.ProfileRepository, error) {
	err := c.lazy(&c.profileRepoInit, "profileRepo", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for profile repository: %w", err)
		}
		switch c.config.DBDriver {
		case "mysql":
			c.profileRepo = accountRepository.NewMySQLProfileRepository(db)
		case "postgres":
			c.profileRepo = accountRepository.NewPostgreSQLProfileRepository(db)
		default:
			return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.profileRepo, nil
}

// AccountUseCase returns the account use case, wrapped with metrics when enabled.
func (c *Container) AccountUseCase() (accountUseCase.AccountUseCase, error) {
	err := c.lazy(&c.accountUseCaseInit, "accountUseCase", func() (err error) {
		c.accountUseCase, err = c.initAccountUseCase()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.accountUseCase, nil
}

func (c *Container) initAccountUseCase() (accountUseCase.AccountUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for account use case: %w", err)
	}

	accountRepo, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for account use case: %w", err)
	}

	profileRepo, err := c.ProfileRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile repository for account use case: %w", err)
	}

	baseUseCase, err := accountUseCase.NewAccountUseCase(txManager, accountRepo, profileRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to create account use case: %w", err)
	}

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for account use case: %w", err)
		}
		return accountUseCase.NewAccountUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
