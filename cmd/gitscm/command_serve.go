package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/gitscm/internal/api"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the plugin operations over HTTP",
		Long: `Serve exposes validate, status, subscription-status, link and search
under /service/scm/git, plus /health and /metrics. It stops gracefully on
SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := api.NewServer(cfg.Server.Addr, container.Handler(), container.Logger())
			if err := server.Start(cmd.Context()); err != nil {
				return newNetworkError("server stopped", err)
			}
			return nil
		},
	}
}
