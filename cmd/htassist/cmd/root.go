package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"htassist/lib/osutil"
	"htassist/lib/prompt"
	"htassist/lib/telemetry"
	"htassist/lib/timezone"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	config   string
	db       string
	currency string
	user     string
	password string
	readOnly bool
	pause    bool
	dumpDir  string
	verbose  bool
}

var flags globalFlags

// set up by the root command before any subcommand runs
var (
	config      Config
	prompter    = prompt.Stdio()
	otelRuntime *telemetry.Telemetry
)

var rootCmd = &cobra.Command{
	Use:   "htassist",
	Short: "htassist keeps a daily ledger of a Hattrick team and its players.",
	Long: `htassist logs into Hattrick, reads the team's finances and the pages of the
monitored players, and files a snapshot of them for the day.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(flags.verbose)

		var err error
		config, err = loadConfig(flags.config)
		if err != nil {
			return err
		}
		config = config.withFlags(cmd, flags)

		if config.Timezone != "" {
			err = timezone.SetLocation(config.Timezone)
			if err != nil {
				return err
			}
		}

		tel, err := telemetry.SetupFromEnv(cmd.Context(), "htassist")
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("no telemetry.json5 found, traces and metrics are not exported")
			return nil
		}
		if err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
		otelRuntime = &tel
		telemetry.InstrumentPerfStats(cmd.Context(), 15*time.Second)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return shutdownTelemetry()
	},
}

func init() {
	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&flags.config, "config", "", "configuration file, htassist.json5 is searched upwards from the working directory by default")
	persistent.StringVar(&flags.db, "db", "", "ledger database file")
	persistent.StringVar(&flags.currency, "currency", "", "the currency the site shows money in")
	persistent.StringVarP(&flags.user, "user", "u", "", "Hattrick login name, asked when missing")
	persistent.StringVarP(&flags.password, "password", "p", "", "Hattrick password, asked when missing")
	persistent.BoolVarP(&flags.readOnly, "read-only", "r", false, "read the site but do not write the ledger")
	persistent.BoolVarP(&flags.pause, "pause", "P", false, "wait for Enter before exiting")
	persistent.StringVar(&flags.dumpDir, "dump-dir", "", "directory of the page dumps written on failures")
	persistent.BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging, HTTP messages are written to the http dump directory")
}

func shutdownTelemetry() error {
	if otelRuntime == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := otelRuntime.Shutdown(ctx)
	otelRuntime = nil
	return err
}

// finish prints the error and, with --pause, keeps the window open until
// Enter is pressed.
func finish(ctx context.Context, out io.Writer, p *prompt.Prompter, pause bool, err error) {
	if err != nil {
		fmt.Fprintln(out, "Error:", err)
	}
	if !pause {
		return
	}
	// the operation's context may be cancelled already
	waitErr := p.WaitForEnter(context.WithoutCancel(ctx))
	if waitErr != nil && !errors.Is(waitErr, prompt.ErrCancelled) {
		slog.Warn("failed to wait for Enter", "err", waitErr)
	}
}

func Execute() {
	ctx := osutil.SignalContext()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		shutdownTelemetry()
	}

	finish(ctx, os.Stderr, prompter, flags.pause, err)
	if err != nil {
		os.Exit(1)
	}
}
