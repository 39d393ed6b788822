package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Reon1917/AU-GURU/pkg/log"
	"github.com/Reon1917/AU-GURU/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the AU GURU services",
	Long:  `Initializes the knowledge base and starts the configured transports (HTTP, optionally Telegram) plus the session sweeper.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting au-guru")

		services := NewServices(ctx)

		srv.StartServices(ctx, services)

		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("au-guru has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
