// Package cli wires the generator's cobra commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lewallen4/flightplight/internal/logging"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "flightplight",
	Short: "Static aviation map generator",
	Long: `flightplight fetches live flight states from the OpenSky Network or
synthesizes demo airfare data, and renders self-contained static HTML pages
embedding a Leaflet map. The output directory is suitable for static hosting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Local errors (bad config, unwritable
// output) exit non-zero; handled upstream failures do not reach this path.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format for CLI error reporting
		cfg := &logging.Config{Level: "debug", Format: "console"}

		l, logErr := logging.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
