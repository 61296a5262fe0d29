package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/httpserver"
	"homework_status_bot/internal/infra/telegram"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "homework-bot",
		Short:         "Polls the homework review API and reports status changes to Telegram",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoop(cmd.Context())
		},
	}

	rootCmd.AddCommand(
		newCheckCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func runLoop(parent context.Context) error {
	cfg := loadConfig()
	a := wireApp(cfg)
	defer a.Close()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poller := a.newPoller(a.chatNotifier(), time.Now().Unix())

	if cfg.BotCommandsEnabled {
		telegram.RegisterBotCommands(a.bot, cfg.TelegramChatID, poller, a.log)
		go a.bot.Start()
		defer a.bot.Stop()
		a.log.Info("Bot command handlers registered, long polling started")
	}

	if cfg.MetricsAddr != "" {
		router := httpserver.NewRouter(poller, a.metrics.Registry)
		go func() {
			if err := httpserver.Serve(ctx, cfg.MetricsAddr, router, a.log); err != nil {
				a.log.WithError(err).Error("HTTP server stopped with error")
			}
		}()
	}

	a.log.WithField("retry_period", cfg.RetryPeriod).Info("Bot started")
	err := poller.Run(ctx)
	a.log.Info("Application shut down gracefully.")
	return err
}

func newCheckCmd() *cobra.Command {
	var since time.Duration
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run a single poll cycle and print its outcome",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig()
			a := wireApp(cfg)
			defer a.Close()

			var notifier app.MessageNotifier = a.chatNotifier()
			if dryRun {
				notifier = printNotifier{out: cmd.OutOrStdout()}
			}
			poller := a.newPoller(notifier, time.Now().Add(-since).Unix())

			res := poller.RunCycle(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "outcome: %s\n", res.Outcome)
			fmt.Fprintf(cmd.OutOrStdout(), "cursor: %d\n", poller.Snapshot().Cursor)
			if res.Err != nil {
				return res.Err
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&since, "since", 0, "poll window start, relative to now (e.g. 720h)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", true, "print messages instead of sending them to the chat")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

type printNotifier struct {
	out io.Writer
}

func (p printNotifier) Notify(_ context.Context, msg app.Message) {
	fmt.Fprintf(p.out, "[%s] %s\n", msg.Kind, msg.Text)
}
