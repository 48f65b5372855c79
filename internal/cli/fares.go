package cli

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lewallen4/flightplight/internal/airports"
	"github.com/lewallen4/flightplight/internal/config"
	"github.com/lewallen4/flightplight/internal/enrich"
	"github.com/lewallen4/flightplight/internal/fares"
	"github.com/lewallen4/flightplight/internal/logging"
	"github.com/lewallen4/flightplight/internal/render"
	"github.com/lewallen4/flightplight/internal/stats"
)

const faresPageName = "fares.html"

var faresFull bool

var faresCmd = &cobra.Command{
	Use:   "fares",
	Short: "Render the demo airfare map",
	Long: `Synthesizes twelve months of demo fares per catalog airport and
renders fares.html. With --full, each airport is first enriched from the
keyed metadata API (AIRPORT_API_KEY) and the Wikipedia image endpoint, and
prices use the tighter 200-500 bound instead of 150-600. Enrichment failures
degrade to catalog values and never fail the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(".")
		if err != nil {
			return err
		}

		logg, err := logging.New(&cfg.Log)
		if err != nil {
			return err
		}
		defer logg.Sync()
		logg = logging.WithRunID(logg)

		run := stats.NewRun()
		list := airports.Catalog()

		genCfg := fares.DefaultConfig()
		if faresFull {
			genCfg = fares.FullConfig()

			if cfg.Airport.APIKey == "" {
				logg.Warn("AIRPORT_API_KEY not set, skipping metadata lookups")
			}
			enricher := enrich.New(cfg.Airport.APIKey, logg,
				enrich.WithMetadataURL(cfg.Airport.MetadataURL),
				enrich.WithWikiURL(cfg.Airport.WikiURL),
			)
			list = enricher.Enrich(cmd.Context(), list)
		}

		sheets := fares.New(genCfg).Sheets(list)
		run.SheetsBuilt.Add(int64(len(sheets)))

		page, err := render.New().FaresPage(sheets, time.Now())
		if err != nil {
			return err
		}

		path, err := newSiteWriter(cfg).WritePage(faresPageName, page)
		if err != nil {
			return err
		}
		run.PagesWritten.Add(1)
		run.BytesWritten.Add(int64(len(page)))

		logg.Info("fare map written",
			append([]zap.Field{
				zap.String("path", path),
				zap.Bool("full", faresFull),
				zap.Int("min_price", genCfg.MinPrice),
				zap.Int("max_price", genCfg.MaxPrice),
			}, run.Fields()...)...)
		return nil
	},
}

func init() {
	faresCmd.Flags().BoolVar(&faresFull, "full", false,
		"enrich airports from the metadata and image APIs")
	RootCmd.AddCommand(faresCmd)
}
