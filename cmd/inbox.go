package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/mailwatch-cli/internal/application"
)

func newInboxCmd(app *app) *cobra.Command {
	var (
		profileName string
		prefix      string
		limit       int
		offset      int
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List mailbox messages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mailbox, err := app.mailboxFor(cmd.Context(), app.profileName(profileName))
			if err != nil {
				return err
			}

			service := application.NewService(mailbox, nil)
			page, err := service.Inbox(cmd.Context(), prefix, limit, offset)
			if err != nil {
				return fmt.Errorf("list inbox: %w", err)
			}

			out := cmd.OutOrStdout()

			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(page)
			}

			for _, msg := range page.Messages {
				marker := " "
				if !msg.IsRead {
					marker = "*"
				}
				_, _ = fmt.Fprintf(out, "%s %6d  %-30s  %s  %s\n",
					marker, msg.ID, msg.From, msg.ReceivedAt.Format(time.RFC3339), msg.Subject)
			}
			_, _ = fmt.Fprintf(out, "%d message(s)", page.Count)
			if page.HasMore {
				_, _ = fmt.Fprint(out, ", more available")
			}
			_, _ = fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "Profile name (defaults to the configured profile)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Only list messages whose recipient matches this prefix")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum messages to fetch")
	cmd.Flags().IntVar(&offset, "offset", 0, "Messages to skip from the newest")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw page as JSON")

	return cmd
}
