package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfilesCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List configured mailbox profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := app.profiles.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list profiles: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(profiles) == 0 {
				_, _ = fmt.Fprintln(out, "no profiles configured, run \"mw login\"")
				return nil
			}

			for _, prof := range profiles {
				_, _ = fmt.Fprintf(out, "%-16s  %-30s  %s\n", prof.Name, prof.Address, prof.BaseURL)
			}
			return nil
		},
	}
}
