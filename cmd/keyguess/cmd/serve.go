package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/guileen/keyguess/bootstrap"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start the keyguess REST API. The listen address, CORS origins and the
optional pebble store come from the config file and KEYGUESS_* variables.

Examples:
  keyguess serve --config keyguess.yaml
  KEYGUESS_PORT=9000 keyguess serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return bootstrap.Serve(ctx, bootstrap.Options{
				ConfigPath: a.configPath,
				EnvFile:    a.envFile,
				LogLevel:   a.logLevel,
				LogWriter:  cmd.ErrOrStderr(),
			})
		},
	}
}
