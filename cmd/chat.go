package cmd

import (
	"fmt"

	"github.com/bnema/agenda-assistant-cli/internal/adapters/render/chat"
	"github.com/spf13/cobra"
)

func newChatCmd(app *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive assistant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conv := app.newConversation(cmd.Context())
			if name != "" {
				conv.SetUserName(name)
			}

			title := fmt.Sprintf("Asistente de agenda · %s", app.company)
			return chat.Run(cmd.Context(), conv, title)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Preset the user name and skip the introduction")

	return cmd
}
