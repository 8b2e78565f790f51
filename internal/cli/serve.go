package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lindle/internal/app"
	"lindle/internal/webserver"
)

func newServeCmd(s *state) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a local read-only gateway over the Lindle API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				s.cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application := app.NewApp(
				app.WithConfig(s.cfg),
				app.WithClient(s.client),
				app.WithLogger(s.log),
			)
			return webserver.ListenAndServe(ctx, s.cfg.Server.Port, webserver.NewRouter(application, s.log), s.log)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides server.port)")
	return cmd
}
