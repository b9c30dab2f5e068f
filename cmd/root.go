package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "agenda",
		Short:         "Personal agenda assistant: manage events, export, and chat in Spanish",
		Long:          "agenda keeps a personal event agenda in a local TOML file and fronts it with a Spanish-speaking conversational assistant backed by Gemini. Use the event subcommands for direct access, or chat/ask to talk to the assistant.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newChatCmd(app),
		newAskCmd(app),
		newEventCmd(app),
		newExportCmd(app),
		newAuthCmd(app),
	)

	return rootCmd
}
