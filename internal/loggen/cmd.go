package loggen

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Egor213/LogOps/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultURL   = "http://localhost:8080/api/logs"
	defaultCount = 50
	defaultDelay = 50 * time.Millisecond
)

func NewRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "loggen",
		Short: "Sends synthetic log events to a LogOps ingestion endpoint",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetupLogger(v.GetString("log-level"), logger.FormatText)
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().String("log-level", "info", "log level")

	root.AddCommand(newSendCmd(v))

	v.SetEnvPrefix("LOGGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))

	return root
}

func newSendCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a batch of random log events",
		Long: `Send a batch of random log events with levels weighted INFO 70%,
WARN 20%, ERROR 10%, spread across a fixed set of services.

Examples:
  loggen send
  loggen send --count 500 --delay 10ms
  LOGGEN_URL=http://logops:8080/api/logs loggen send`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			url := v.GetString("url")
			count := v.GetInt("count")

			sender := NewSender(url, v.GetDuration("timeout"))
			sent, err := Run(ctx, NewGenerator(time.Now().UnixNano()), sender, count, v.GetDuration("delay"))
			if err != nil {
				return fmt.Errorf("sent %d of %d logs: %w", sent, count, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sent %d logs to %s\n", sent, url)
			return nil
		},
	}

	cmd.Flags().String("url", defaultURL, "ingestion endpoint")
	cmd.Flags().Int("count", defaultCount, "number of events to send")
	cmd.Flags().Duration("delay", defaultDelay, "pause between events")
	cmd.Flags().Duration("timeout", 5*time.Second, "per-request timeout")

	for _, name := range []string{"url", "count", "delay", "timeout"} {
		_ = v.BindPFlag(name, cmd.Flags().Lookup(name))
	}

	return cmd
}

func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
