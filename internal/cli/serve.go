package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/designpanel/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the panel over HTTP",
		Long: `Serve one design panel over HTTP.

  GET  /healthz   liveness probe
  GET  /version   build information
  GET  /panel     current render tree
  POST /events    apply one event or an array of events

Events use the script step shape, for example
  {"type": "press", "x": 100, "y": 100}
  {"type": "key", "key": "ArrowRight"}

The block size comes from the config file since there is nothing to measure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			srv, err := server.New(cfg, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
