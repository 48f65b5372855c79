package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lewallen4/flightplight/internal/config"
	"github.com/lewallen4/flightplight/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview the output directory locally",
	Long:  `Serves the generated pages over HTTP for local preview before publishing.`,
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

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})
		app.Static("/", cfg.Output.Dir, fiber.Static{
			Browse: true,
		})

		go func() {
			logg.Info("preview server listening",
				zap.String("port", cfg.Serve.Port),
				zap.String("dir", cfg.Output.Dir))
			if err := app.Listen(":" + cfg.Serve.Port); err != nil {
				logg.Fatal("server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("shutting down preview server")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
