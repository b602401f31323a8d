package cmd

import (
	"github.com/spf13/cobra"

	"github.com/licitavision/placsp-connector/internal/bootstrap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap.NewApp(cfgPath, debug)
		if err != nil {
			return err
		}
		return app.Run()
	},
}
