package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lewallen4/flightplight/internal/config"
	"github.com/lewallen4/flightplight/internal/ingestion"
	"github.com/lewallen4/flightplight/internal/logging"
	"github.com/lewallen4/flightplight/internal/render"
	"github.com/lewallen4/flightplight/internal/site"
	"github.com/lewallen4/flightplight/internal/stats"
)

const flightsPageName = "flights.html"

var flightsCmd = &cobra.Command{
	Use:   "flights",
	Short: "Render the live flight map",
	Long: `Fetches current state vectors from the OpenSky Network and renders
flights.html. An upstream failure produces a degraded error page instead and
still exits 0; only local errors (bad config, unwritable output) fail the
command.`,
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
		client := newOpenSkyClient(cfg, logg)
		renderer := render.New()
		writer := newSiteWriter(cfg)

		states, err := client.FetchStatesWithRetry(cmd.Context())
		if err != nil {
			// Upstream failure is absorbed into a degraded page; the
			// process still exits 0 (soft failure).
			run.FetchFailures.Add(1)
			page, renderErr := errorPageFor(renderer, err)
			if renderErr != nil {
				return renderErr
			}
			path, writeErr := writer.WritePage(flightsPageName, page)
			if writeErr != nil {
				return writeErr
			}
			run.PagesWritten.Add(1)
			run.BytesWritten.Add(int64(len(page)))
			logg.Warn("upstream fetch failed, wrote degraded page",
				append([]zap.Field{zap.String("path", path), zap.Error(err)}, run.Fields()...)...)
			return nil
		}

		run.StatesFetched.Add(int64(len(states)))
		run.StatesEmbedded.Add(int64(len(states)))

		page, err := renderer.FlightsPage(states, time.Now())
		if err != nil {
			return err
		}

		path, err := writer.WritePage(flightsPageName, page)
		if err != nil {
			return err
		}
		run.PagesWritten.Add(1)
		run.BytesWritten.Add(int64(len(page)))

		logg.Info("flight map written",
			append([]zap.Field{zap.String("path", path)}, run.Fields()...)...)
		return nil
	},
}

// newOpenSkyClient builds the ingestion client from config, preferring
// OAuth2 client credentials, then a credentials file, then Basic Auth, then
// anonymous access.
func newOpenSkyClient(cfg *config.Config, logg *zap.Logger) *ingestion.Client {
	opts := []ingestion.ClientOption{
		ingestion.WithBaseURLOption(cfg.OpenSky.BaseURL),
	}

	clientID, clientSecret := cfg.OpenSky.ClientID, cfg.OpenSky.ClientSecret
	if clientID == "" || clientSecret == "" {
		if creds, err := ingestion.LoadCredentials(cfg.OpenSky.CredentialsFile); err == nil {
			clientID, clientSecret = creds.ClientID, creds.ClientSecret
			logg.Debug("loaded OAuth2 credentials",
				zap.String("file", cfg.OpenSky.CredentialsFile))
		}
	}

	switch {
	case clientID != "" && clientSecret != "":
		opts = append(opts, ingestion.WithClientCredentials(clientID, clientSecret))
		logg.Debug("OpenSky auth: OAuth2 client credentials")
	case cfg.OpenSky.Username != "" && cfg.OpenSky.Password != "":
		opts = append(opts, ingestion.WithCredentials(cfg.OpenSky.Username, cfg.OpenSky.Password))
		logg.Debug("OpenSky auth: Basic Auth (legacy)")
	default:
		logg.Debug("OpenSky auth: anonymous")
	}

	return ingestion.NewClient(opts...)
}

// newSiteWriter builds the output writer from config.
func newSiteWriter(cfg *config.Config) *site.Writer {
	var opts []site.Option
	if cfg.Output.Gzip {
		opts = append(opts, site.WithGzip())
	}
	return site.NewWriter(cfg.Output.Dir, opts...)
}

// errorPageFor renders the degraded page for a fetch failure. A StatusError
// carries the upstream code and body excerpt; transport errors render with
// status 0 and the error text.
func errorPageFor(renderer *render.Renderer, err error) ([]byte, error) {
	var se *ingestion.StatusError
	if errors.As(err, &se) {
		return renderer.ErrorPage(se.StatusCode, se.Body, time.Now())
	}
	return renderer.ErrorPage(0, []byte(err.Error()), time.Now())
}

func init() {
	RootCmd.AddCommand(flightsCmd)
}
