package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	cmdutil "github.com/kvboard/kvboard/cmd"
	"github.com/kvboard/kvboard/internal"
	"github.com/kvboard/kvboard/internal/daemon"
	"github.com/kvboard/kvboard/internal/logr"
)

const (
	DefaultAddress  = ":8080"
	DefaultDatabase = "postgres:///kvboard?host=/var/run/postgresql"
)

func main() {
	// Configure ^C to terminate program
	ctx, cancel := context.WithCancel(context.Background())
	cmdutil.CatchCtrlC(cancel)

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		cmdutil.PrintError(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	var (
		cfg     daemon.Config
		version bool
	)

	cmd := &cobra.Command{
		Use:           "kvboardd",
		Short:         "kvboard daemon",
		Long:          "kvboardd serves the kvboard web UI, storing key-value pairs in postgres.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if version {
				fmt.Fprintln(cmd.OutOrStdout(), internal.Version)
				return nil
			}

			logger, err := logr.New(&cfg.LogConfig)
			if err != nil {
				return err
			}

			d, err := daemon.New(cmd.Context(), logger, cfg)
			if err != nil {
				return err
			}

			// Block until ^C received.
			return d.Start(cmd.Context(), make(chan struct{}))
		},
	}
	cmd.SetOut(out)
	cmd.SetArgs(args)

	flags := cmd.Flags()
	flags.StringVar(&cfg.Address, "address", DefaultAddress, "Listening address")
	flags.StringVar(&cfg.Database, "database", DefaultDatabase, "Postgres connection string")
	flags.BoolVar(&cfg.SSL, "ssl", false, "Toggle SSL")
	flags.StringVar(&cfg.CertFile, "cert-file", "", "Path to SSL certificate (required if enabling SSL)")
	flags.StringVar(&cfg.KeyFile, "key-file", "", "Path to SSL key (required if enabling SSL)")
	flags.BoolVar(&cfg.EnableRequestLogging, "log-http-requests", false, "Log HTTP requests")
	flags.BoolVar(&cfg.DevMode, "dev-mode", false, "Render templates and assets from local disk")
	flags.BoolVar(&version, "version", false, "Print version of kvboardd")
	logr.LoadConfigFromFlags(flags, &cfg.LogConfig)

	// Override flags with environment variables, e.g. KVBOARD_DATABASE
	// overrides --database.
	if err := cmdutil.SetFlagsFromEnvVariables(flags); err != nil {
		return fmt.Errorf("setting flags from environment variables: %w", err)
	}

	return cmd.ExecuteContext(ctx)
}
