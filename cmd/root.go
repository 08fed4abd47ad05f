package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mw",
		Short:         "Mail watcher (mw): poll an agent mailbox and react to new messages",
		Long:          "mw logs in to an agent mail service, watches a mailbox for new messages, and can send, list, and acknowledge mail from the terminal.",
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
		newLoginCmd(app),
		newWatchCmd(app),
		newSendCmd(app),
		newInboxCmd(app),
		newReadCmd(app),
		newProfilesCmd(app),
	)

	return rootCmd
}
