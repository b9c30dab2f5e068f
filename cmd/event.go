package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errConfirmationRequired = errors.New("destructive operation requires --yes")

func newEventCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage agenda events directly",
	}

	cmd.AddCommand(
		newEventAddCmd(app),
		newEventListCmd(app),
		newEventOnCmd(app),
		newEventDeleteCmd(app),
		newEventClearCmd(app),
	)

	return cmd
}

func newEventAddCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <date> <time>",
		Short: "Add an event (date YYYY-MM-DD, time HH:MM)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.service.CreateEvent(cmd.Context(), args[0], args[1], args[2]))
			return err
		},
	}
}

func newEventListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.service.GetAllEvents(cmd.Context()))
			return err
		},
	}
}

func newEventOnCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "on <date>",
		Short: "List the events of one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.service.GetEventsByDate(cmd.Context(), args[0]))
			return err
		},
	}
}

func newEventDeleteCmd(app *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <name> <date>",
		Short: "Delete one event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errConfirmationRequired
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.service.DeleteEvent(cmd.Context(), args[0], args[1]))
			return err
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")

	return cmd
}

func newEventClearCmd(app *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every event in the agenda",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errConfirmationRequired
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.service.DeleteAllEvents(cmd.Context()))
			return err
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")

	return cmd
}
