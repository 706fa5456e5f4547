package commands

import (
	"context"
	"fmt"
	"log/slog"

	accountUseCase "github.com/allisson/hawkpair/internal/account/usecase"
)

// RunSetAccountActive activates or deactivates an account. Credentials held by a deactivated
// account stop verifying immediately; they are not deleted.
func RunSetAccountActive(
	ctx context.Context,
	accountUseCase accountUseCase.AccountUseCase,
	logger *slog.Logger,
	streams IOTuple,
	id string,
	active bool,
) error {
	accountID, err := parseAccountID(id)
	if err != nil {
		return err
	}

	if active {
		err = accountUseCase.Activate(ctx, accountID)
	} else {
		err = accountUseCase.Deactivate(ctx, accountID)
	}
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	state := "deactivated"
	if active {
		state = "activated"
	}
	_, _ = fmt.Fprintf(streams.Writer, "Account %s %s\n", accountID, state)

	logger.Info("account "+state, slog.String("account_id", accountID.String()))
	return nil
}

// RunRemoveAccount deletes an account and its profile.
func RunRemoveAccount(
	ctx context.Context,
	accountUseCase accountUseCase.AccountUseCase,
	logger *slog.Logger,
	streams IOTuple,
	id string,
) error {
	accountID, err := parseAccountID(id)
	if err != nil {
		return err
	}

	if err := accountUseCase.Remove(ctx, accountID); err != nil {
		return fmt.Errorf("failed to remove account: %w", err)
	}

	_, _ = fmt.Fprintf(streams.Writer, "Account %s removed\n", accountID)
	logger.Info("account removed", slog.String("account_id", accountID.String()))
	return nil
}
