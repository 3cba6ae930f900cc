package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/server"
)

func newTokenCmd(a *app) *cobra.Command {
	var clientID string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API bearer token",
		Long: `Sign a bearer token for --client with JWT_SECRET (or jwt_secret in the config file).
The token is accepted by "serve" when it runs with the same secret.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if clientID == "" {
				return fmt.Errorf("--client is required")
			}
			jwtConfig, err := config.NewJWTConfig(a.cfg.JWTSecret)
			if err != nil {
				return err
			}
			token, expiresAt, err := server.NewJWTService(jwtConfig).GenerateToken(clientID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			a.logger.Info().Str("client", clientID).Time("expires_at", expiresAt).Msg("issued token")
			return nil
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "API client ID to embed in the token")

	cmd.AddCommand(&cobra.Command{
		Use:   "hash-key KEY",
		Short: "Hash an API key for the API_KEYS variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := config.NewAPIKeyConfig()
			if err != nil {
				return err
			}
			hash, err := keys.HashKey(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	})
	return cmd
}
