package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/Felobateer/ECommerce-API/cmd/app/commands"
	"github.com/Felobateer/ECommerce-API/internal/app"
	"github.com/Felobateer/ECommerce-API/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "purge-revoked-tokens",
			Usage: "Delete revocation records whose tokens have expired",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many records would be deleted without deleting",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				sessions, err := container.SessionUseCase()
				if err != nil {
					return err
				}

				return commands.RunPurgeRevokedTokens(
					ctx,
					sessions,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
	}
}
