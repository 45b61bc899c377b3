package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Makepad-fr/tada-remote/internal/devapi"
	"github.com/Makepad-fr/tada-remote/internal/logging"
	"github.com/Makepad-fr/tada-remote/internal/ui"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr, data string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local todo API for development",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = app.cfg.Server.Addr
			}
			if !cmd.Flags().Changed("data") {
				data = app.cfg.Server.DataFile
			}

			store, err := devapi.NewStore(data)
			if err != nil {
				return err
			}
			// the server has no screen to protect, so it logs to stderr
			logger := logging.New(cmd.ErrOrStderr(), app.cfg.Log.Level)
			srv := devapi.NewServer(store, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ui.OK(cmd.OutOrStdout(), "serving on "+addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8000)")
	cmd.Flags().StringVar(&data, "data", "", "JSON file persisting users and todos (empty keeps state in memory)")
	return cmd
}
