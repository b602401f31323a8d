// Package cmd implements the placsp-connector command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "placsp-connector",
	Short: "Connector for Spanish public procurement notices",
	Long: `placsp-connector ingests PLACSP syndication feeds, filters notices by
region, enriches them with CPV classifications via a detail worker and
serves the results over HTTP.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(feedsCmd)
	rootCmd.AddCommand(versionCmd)
}
