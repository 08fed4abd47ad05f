package cmd

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	handleradapter "github.com/bnema/mailwatch-cli/internal/adapters/handler"
	"github.com/bnema/mailwatch-cli/internal/application"
	"github.com/bnema/mailwatch-cli/internal/ports"
)

func newWatchCmd(app *app) *cobra.Command {
	var (
		profileName string
		prefix      string
		intervalMS  int
		pageSize    int
		firstCycle  string
		execCommand string
		markRead    bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the mailbox and dispatch new messages until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			mailbox, err := app.mailboxFor(ctx, app.profileName(profileName))
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("prefix") {
				prefix = app.cfg.GetString("watch.prefix")
			}
			if !cmd.Flags().Changed("interval") {
				intervalMS = app.cfg.GetInt("watch.interval_ms")
			}
			if !cmd.Flags().Changed("page-size") {
				pageSize = app.cfg.GetInt("watch.page_size")
			}
			if !cmd.Flags().Changed("first-cycle") {
				firstCycle = app.cfg.GetString("watch.first_cycle")
			}
			if execCommand == "" {
				execCommand = app.cfg.GetString("handler.command")
			}
			if !cmd.Flags().Changed("mark-read") {
				markRead = app.cfg.GetBool("handler.mark_read")
			}

			policy, err := firstCyclePolicy(firstCycle)
			if err != nil {
				return err
			}

			var handler ports.MessageHandler
			if execCommand != "" {
				parts := strings.Fields(execCommand)
				handler = handleradapter.NewExec(parts[0], parts[1:]...)
			} else {
				handler = handleradapter.NewLog(app.log)
			}
			if markRead {
				handler = handleradapter.NewMarkRead(handler, mailbox)
			}

			watcher := application.NewWatcher(mailbox, handler, application.WatcherOptions{
				Prefix:     prefix,
				Interval:   time.Duration(intervalMS) * time.Millisecond,
				PageSize:   pageSize,
				FirstCycle: policy,
			}, app.log)

			watcher.Start()
			<-ctx.Done()
			watcher.Stop()
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "Profile name (defaults to the configured profile)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Only watch messages whose recipient matches this prefix")
	cmd.Flags().IntVar(&intervalMS, "interval", 15_000, "Poll interval in milliseconds")
	cmd.Flags().IntVar(&pageSize, "page-size", 50, "Messages fetched per poll cycle")
	cmd.Flags().StringVar(&firstCycle, "first-cycle", "backlog", "First cycle policy: backlog or prime")
	cmd.Flags().StringVar(&execCommand, "exec", "", "Command to run per new message (body on stdin, fields in MW_MESSAGE_* env)")
	cmd.Flags().BoolVar(&markRead, "mark-read", false, "Mark messages read after the handler accepts them")

	return cmd
}

func firstCyclePolicy(value string) (application.FirstCyclePolicy, error) {
	switch application.FirstCyclePolicy(value) {
	case application.DispatchBacklog:
		return application.DispatchBacklog, nil
	case application.PrimeOnly:
		return application.PrimeOnly, nil
	default:
		return "", fmt.Errorf("unknown first-cycle policy %q (want backlog or prime)", value)
	}
}
