package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(app *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "ask <text>...",
		Short: "Send a single utterance to the assistant and print the reply",
		Long:  "ask runs one turn of the assistant without the interactive UI. Each invocation is a fresh session, so the assistant asks for your name first unless --name is given.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv := app.newConversation(cmd.Context())
			if name != "" {
				conv.SetUserName(name)
			}

			reply := conv.Handle(cmd.Context(), strings.Join(args, " "))
			_, err := fmt.Fprintln(cmd.OutOrStdout(), reply)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Preset the user name and skip the introduction")

	return cmd
}
