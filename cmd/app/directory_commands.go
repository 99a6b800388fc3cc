package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credvault/cmd/app/commands"
	"github.com/allisson/credvault/internal/app"
	"github.com/allisson/credvault/internal/config"
)

func getDirectoryCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-organization",
			Usage: "Register a new organization",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Organization name",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Organization contact email",
				},
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Organization password",
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

				directoryUseCase, err := container.DirectoryUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateOrganization(
					ctx,
					directoryUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("email"),
					cmd.String("password"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "create-employee",
			Usage: "Create an employee inside an organization",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "organization-id",
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "Organization ID (UUID)",
				},
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Employee name",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Employee email",
				},
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Employee password",
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

				directoryUseCase, err := container.DirectoryUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateEmployee(
					ctx,
					directoryUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("organization-id"),
					cmd.String("name"),
					cmd.String("email"),
					cmd.String("password"),
					cmd.String("format"),
				)
			},
		},
	}
}
