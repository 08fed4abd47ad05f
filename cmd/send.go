package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/mailwatch-cli/internal/adapters/render"
	"github.com/bnema/mailwatch-cli/internal/application"
)

func newSendCmd(app *app) *cobra.Command {
	var (
		profileName string
		from        string
		to          string
		subject     string
		body        string
		markdown    bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a message through the mail service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name := app.profileName(profileName)

			mailbox, err := app.mailboxFor(cmd.Context(), name)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("body") {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read message body from stdin: %w", err)
				}
				body = strings.TrimRight(string(raw), "\n")
			}

			if from == "" {
				prof, err := app.profiles.GetByName(cmd.Context(), name)
				if err == nil {
					from = prof.Address
				}
			}

			service := application.NewService(mailbox, render.MarkdownToHTML)
			id, err := service.Send(cmd.Context(), application.SendInput{
				From:     from,
				To:       to,
				Subject:  subject,
				Body:     body,
				Markdown: markdown,
			})
			if err != nil {
				return fmt.Errorf("send message: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sent message %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "Profile name (defaults to the configured profile)")
	cmd.Flags().StringVar(&from, "from", "", "Sender address (defaults to the profile address)")
	cmd.Flags().StringVar(&to, "to", "", "Recipient address")
	cmd.Flags().StringVar(&subject, "subject", "", "Message subject")
	cmd.Flags().StringVar(&body, "body", "", "Message body (read from stdin when omitted)")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render the body from markdown to HTML")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
