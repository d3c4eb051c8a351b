package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rauncher/rauncher/internal/app"
	"github.com/rauncher/rauncher/internal/auth"
	"github.com/rauncher/rauncher/internal/observability"
)

// Execute runs the root command with the given context and arguments.
func Execute(ctx context.Context, args []string) error {
	cmd := &cli.Command{
		Name:  "rauncher",
		Usage: "game launcher client",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug|info|warn|error)",
				Value: slog.LevelInfo.String(),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format (text|json|otlp)",
				Value: string(app.DefaultConfigLogFormat),
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "application data directory",
			},
			&cli.StringFlag{
				Name:  "auth--storage",
				Usage: "credential storage backend (file|keyring)",
			},
			&cli.StringFlag{
				Name:  "auth--file",
				Usage: "path to the credential file (file storage)",
			},
			&cli.StringFlag{
				Name:  "auth--keyring-user",
				Usage: "keyring user identifier (keyring storage)",
			},
		},
		Commands: []*cli.Command{
			authCommand(),
		},
	}

	return cmd.Run(ctx, args)
}

// setup loads configuration, installs the logger and builds the credential
// manager every auth subcommand needs. The returned shutdown function
// flushes buffered log records.
func setup(ctx context.Context, cmd *cli.Command) (*auth.Manager, func(context.Context) error, error) {
	cfg, err := loadConfig(cmd.String("config"), cmd, os.Environ)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	shutdown, err := observability.Instrument(ctx, cfg.LogLevel, string(cfg.LogFormat))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up observability layer: %w", err)
	}

	store, err := cfg.Auth.NewStore()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create credential store: %w", err)
	}

	manager, err := auth.NewManager(ctx, store)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create credential manager: %w", err)
	}

	return manager, shutdown, nil
}
