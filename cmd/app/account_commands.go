package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/hawkpair/cmd/app/commands"
	accountUseCase "github.com/allisson/hawkpair/internal/account/usecase"
	"github.com/allisson/hawkpair/internal/app"
	"github.com/allisson/hawkpair/internal/config"
)

var accountIDFlag = &cli.StringFlag{
	Name:     "id",
	Aliases:  []string{"i"},
	Required: true,
	Usage:    "Account ID (UUID)",
}

// withAccountUseCase loads configuration, builds the container and hands the account use case
// to fn, releasing the container afterwards.
func withAccountUseCase(
	ctx context.Context,
	fn func(uc accountUseCase.AccountUseCase, container *app.Container) error,
) error {
	container := app.NewContainer(config.Load())
	defer func() { _ = container.Shutdown(ctx) }()

	uc, err := container.AccountUseCase()
	if err != nil {
		return err
	}
	return fn(uc, container)
}

func getAccountCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-account",
			Usage: "Register an account and its profile",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Account email, used as the login username",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Account password (omit to be prompted)",
				},
				&cli.StringFlag{
					Name:    "full-name",
					Aliases: []string{"n"},
					Usage:   "Profile display name",
				},
				&cli.BoolFlag{
					Name:    "active",
					Aliases: []string{"a"},
					Value:   true,
					Usage:   "Whether the account can log in immediately",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withAccountUseCase(ctx, func(uc accountUseCase.AccountUseCase, c *app.Container) error {
					return commands.RunCreateAccount(
						ctx,
						uc,
						c.Logger(),
						commands.DefaultIO(),
						cmd.String("email"),
						cmd.String("password"),
						cmd.String("full-name"),
						cmd.Bool("active"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "activate-account",
			Usage: "Allow an account to log in",
			Flags: []cli.Flag{accountIDFlag},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withAccountUseCase(ctx, func(uc accountUseCase.AccountUseCase, c *app.Container) error {
					return commands.RunSetAccountActive(ctx, uc, c.Logger(), commands.DefaultIO(), cmd.String("id"), true)
				})
			},
		},
		{
			Name:  "deactivate-account",
			Usage: "Block an account; its credentials stop verifying",
			Flags: []cli.Flag{accountIDFlag},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withAccountUseCase(ctx, func(uc accountUseCase.AccountUseCase, c *app.Container) error {
					return commands.RunSetAccountActive(ctx, uc, c.Logger(), commands.DefaultIO(), cmd.String("id"), false)
				})
			},
		},
		{
			Name:  "set-password",
			Usage: "Replace an account password",
			Flags: []cli.Flag{
				accountIDFlag,
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "New password (omit to be prompted)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withAccountUseCase(ctx, func(uc accountUseCase.AccountUseCase, c *app.Container) error {
					return commands.RunSetPassword(
						ctx, uc, c.Logger(), commands.DefaultIO(), cmd.String("id"), cmd.String("password"),
					)
				})
			},
		},
		{
			Name:  "remove-account",
			Usage: "Delete an account and its profile",
			Flags: []cli.Flag{accountIDFlag},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withAccountUseCase(ctx, func(uc accountUseCase.AccountUseCase, c *app.Container) error {
					return commands.RunRemoveAccount(ctx, uc, c.Logger(), commands.DefaultIO(), cmd.String("id"))
				})
			},
		},
	}
}
