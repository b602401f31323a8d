package cmd

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/licitavision/placsp-connector/internal/bootstrap"
)

var (
	ingestRegions []string
	ingestLimit   int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch feeds once and print matching notices",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap.NewApp(cfgPath, debug)
		if err != nil {
			return err
		}
		defer func() { _ = app.Log.Sync() }()

		limit := ingestLimit
		if limit <= 0 {
			limit = app.Config.Feeds.DefaultLimit
		}
		if limit > app.Config.Feeds.MaxLimit {
			limit = app.Config.Feeds.MaxLimit
		}

		notices, err := app.Ingestor.Ingest(cmd.Context(), ingestRegions, limit)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Title", "Updated", "Awarding body", "Amount", "CPV", "URL"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Name: "Title", WidthMax: 50},
			{Name: "URL", WidthMax: 60, WidthMaxEnforcer: text.Trim},
		})
		for i, n := range notices {
			t.AppendRow(table.Row{i + 1, n.Title, n.Updated, n.AwardingBody, n.Amount, n.CPVGuess, n.URL})
		}
		t.Render()
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringSliceVar(&ingestRegions, "regions", nil, "regions or provinces to match (comma separated)")
	ingestCmd.Flags().IntVar(&ingestLimit, "limit", 0, "maximum notices to return (0 = configured default)")
	_ = ingestCmd.MarkFlagRequired("regions")
}
