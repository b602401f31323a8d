package cmd

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/licitavision/placsp-connector/internal/config"
)

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "List the configured syndication sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Source"})
		for i, src := range cfg.Feeds.Sources {
			t.AppendRow(table.Row{i + 1, src})
		}
		t.Render()
		return nil
	},
}
