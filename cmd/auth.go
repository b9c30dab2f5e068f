package cmd

import (
	"errors"
	"fmt"

	filestore "github.com/bnema/agenda-assistant-cli/internal/adapters/secrets/file"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the Gemini API key",
	}

	cmd.AddCommand(newAuthSetCmd(app), newAuthShowCmd(app), newAuthRemoveCmd(app))

	return cmd
}

func newAuthSetCmd(app *app) *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the Gemini API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.secretStore.Put(cmd.Context(), filestore.GeminiAPIKey, apiKey); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "API key stored")
			return err
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Gemini API key")
	_ = cmd.MarkFlagRequired("api-key")

	return cmd
}

func newAuthShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show whether an API key is stored",
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := app.secretStore.Get(cmd.Context(), filestore.GeminiAPIKey)
			if errors.Is(err, filestore.ErrSecretNotFound) {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "no API key stored")
				return err
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "API key stored (%s)\n", maskSecret(key))
			return err
		},
	}
}

func newAuthRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the stored API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.secretStore.Delete(cmd.Context(), filestore.GeminiAPIKey); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "API key removed")
			return err
		},
	}
}

func maskSecret(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:4] + "****"
}
