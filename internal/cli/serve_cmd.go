package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abramin/Victus-sub005/internal/httpapi"
)

func newServeCmd(a *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			server := httpapi.NewServer(httpapi.Deps{
				Plans:         a.Plans,
				Logs:          a.Logs,
				Imports:       a.Imports,
				Analysis:      a.Analysis,
				Metabolic:     a.Metabolic,
				Profiles:      a.Profiles,
				Catalog:       a.Catalog,
				Solver:        a.Solver,
				SolverEnabled: a.SolverEnabled,
				Logger:        logger,
			})

			logger.Info("listening", "addr", addr)
			if err := server.Router().Run(addr); err != nil {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		},
	}

	defaultAddr := os.Getenv("VICTUS_HTTP_ADDR")
	if defaultAddr == "" {
		defaultAddr = ":8080"
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "Listen address")

	return cmd
}
