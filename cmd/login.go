package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/mailwatch-cli/internal/adapters/mailapi"
	"github.com/bnema/mailwatch-cli/internal/domain"
	"github.com/bnema/mailwatch-cli/internal/ports"
)

func newLoginCmd(app *app) *cobra.Command {
	var (
		profileName string
		address     string
		baseURL     string
		username    string
		password    string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate a mailbox profile and store its credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name := app.profileName(profileName)

			if baseURL == "" {
				baseURL = app.cfg.GetString("base_url")
			}
			if baseURL == "" {
				return &domain.ValidationError{Field: "base-url", Reason: "must be set via flag or config"}
			}
			if password == "" {
				// Reading from stdin keeps the password out of shell
				// history and process listings.
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return &domain.ValidationError{Field: "password", Reason: "must not be empty"}
			}

			creds := domain.Credentials{Username: username, Password: password}

			// Verify the credentials against the service before
			// persisting anything.
			sessions := mailapi.NewSessionManager(
				mailapi.API{BaseURL: baseURL},
				creds,
				app.httpClient,
				ports.SystemClock{},
				app.requestTimeout(),
				app.log,
			)
			if err := sessions.EnsureValid(cmd.Context()); err != nil {
				return fmt.Errorf("verify credentials: %w", err)
			}

			encoded, err := json.Marshal(creds)
			if err != nil {
				return fmt.Errorf("encode credentials: %w", err)
			}

			ref := secretRef(name)
			if err := app.secrets.Put(cmd.Context(), ref, string(encoded)); err != nil {
				return fmt.Errorf("store credentials: %w", err)
			}

			if address == "" {
				address = username
			}
			err = app.profiles.Save(cmd.Context(), domain.Profile{
				Name:      name,
				Address:   address,
				BaseURL:   baseURL,
				SecretRef: ref,
			})
			if err != nil {
				return fmt.Errorf("save profile: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in profile %q as %s\n", name, username)
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "Profile name (defaults to the configured profile)")
	cmd.Flags().StringVar(&address, "address", "", "Mailbox address for the profile (defaults to the username)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Mail service base URL")
	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted on stdin when omitted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}
