package commands

import (
	"context"
	"fmt"
	"log/slog"

	accountDomain "github.com/allisson/hawkpair/internal/account/domain"
	accountUseCase "github.com/allisson/hawkpair/internal/account/usecase"
)

type createAccountOutput struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
}

// RunCreateAccount registers an account with its profile. When password is empty it is
// read from streams.
//
// Requirements: Database must be migrated and accessible.
func RunCreateAccount(
	ctx context.Context,
	accountUseCase accountUseCase.AccountUseCase,
	logger *slog.Logger,
	streams IOTuple,
	email, password, fullName string,
	isActive bool,
	format string,
) error {
	if password == "" {
		var err error
		password, err = readPassword(streams, "Password: ")
		if err != nil {
			return err
		}
	}

	account, err := accountUseCase.Register(ctx, &accountDomain.RegisterAccountInput{
		Email:    email,
		Password: password,
		FullName: fullName,
		IsActive: isActive,
	})
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	writeOutput(streams.Writer, format,
		createAccountOutput{ID: account.ID.String(), Username: account.Username, IsActive: account.IsActive},
		fmt.Sprintf("Account created\nID: %s\nUsername: %s\nActive: %t",
			account.ID, account.Username, account.IsActive),
	)

	logger.Info("account created",
		slog.String("account_id", account.ID.String()),
		slog.Bool("is_active", account.IsActive),
	)

	return nil
}
