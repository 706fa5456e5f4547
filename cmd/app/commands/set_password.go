package commands

import (
	"context"
	"fmt"
	"log/slog"

	accountUseCase "github.com/allisson/hawkpair/internal/account/usecase"
)

// RunSetPassword replaces an account password without checking the current one.
// When password is empty it is read from streams.
func RunSetPassword(
	ctx context.Context,
	accountUseCase accountUseCase.AccountUseCase,
	logger *slog.Logger,
	streams IOTuple,
	id, password string,
) error {
	accountID, err := parseAccountID(id)
	if err != nil {
		return err
	}

	if password == "" {
		password, err = readPassword(streams, "New password: ")
		if err != nil {
			return err
		}
	}

	if err := accountUseCase.ForceSetPassword(ctx, accountID, password); err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}

	_, _ = fmt.Fprintf(streams.Writer, "Password updated for account %s\n", accountID)
	logger.Info("account password updated", slog.String("account_id", accountID.String()))
	return nil
}
