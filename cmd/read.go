package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/mailwatch-cli/internal/application"
)

func newReadCmd(app *app) *cobra.Command {
	var profileName string

	cmd := &cobra.Command{
		Use:   "read <message-id>",
		Short: "Mark a message as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parse message id %q: %w", args[0], err)
			}

			mailbox, err := app.mailboxFor(cmd.Context(), app.profileName(profileName))
			if err != nil {
				return err
			}

			service := application.NewService(mailbox, nil)
			if err := service.MarkRead(cmd.Context(), id); err != nil {
				return fmt.Errorf("mark message read: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Marked message %d read\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "Profile name (defaults to the configured profile)")

	return cmd
}
