package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/maigie/maigie-api/internal/config"
	"github.com/maigie/maigie-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

// cliOptions holds the flags shared by every command.
type cliOptions struct {
	envFile string
}

func (o *cliOptions) provider() *config.Provider {
	return config.NewProvider(config.WithEnvFile(o.envFile))
}

// newRootCommand builds the "server" command tree. Running the root command
// without a subcommand serves the API.
func newRootCommand() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:          "server",
		Short:        "Maigie API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts.provider())
		},
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", config.DefaultEnvFile,
		"dotenv file to read settings from; empty disables it")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the HTTP API",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context(), opts.provider())
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Apply the seed data to the database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runSeed(cmd.Context(), opts.provider())
			},
		},
		&cobra.Command{
			Use:   "config",
			Short: "Print the effective settings with secrets redacted",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				settings, err := opts.provider().Get()
				if err != nil {
					return err
				}
				return printSettings(cmd.OutOrStdout(), settings)
			},
		},
		newTokenCommand(opts),
	)

	return root
}

func newTokenCommand(opts *cliOptions) *cobra.Command {
	var refreshToken string

	cmd := &cobra.Command{
		Use:   "token [user-id]",
		Short: "Issue an access and refresh token pair signed with SECRET_KEY",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.provider().Get()
			if err != nil {
				return err
			}
			var userID string
			if len(args) == 1 {
				userID = args[0]
			}
			return issueTokens(cmd.Context(), cmd.OutOrStdout(), settings, userID, refreshToken)
		},
	}
	cmd.Flags().StringVar(&refreshToken, "refresh", "", "exchange this refresh token for a new pair")

	return cmd
}

// setup loads the settings and installs the process logger.
func setup(provider *config.Provider) (*config.Settings, *slog.Logger, error) {
	settings, err := provider.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(logger.Config{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded", "settings", settings)
	return settings, log, nil
}

func runServe(ctx context.Context, provider *config.Provider) error {
	settings, log, err := setup(provider)
	if err != nil {
		return err
	}

	app, err := newApplication(settings, log)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

// printSettings writes the redacted settings as indented JSON.
func printSettings(w io.Writer, settings *config.Settings) error {
	out := make(map[string]any)
	for _, attr := range settings.LogValue().Group() {
		out[attr.Key] = attr.Value.Any()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
