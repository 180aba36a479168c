package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/timada-org/todo/internal/api"
)

var (
	addr string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the todo API server",

		Run: func(cmd *cobra.Command, args []string) {
			config, logger := loadConfig()
			if addr != "" {
				config.Addr = addr
			}

			s, err := openStore(config, logger)
			if err != nil {
				logger.Fatal("opening store", "driver", config.Store.Driver, "err", err)
			}

			app := api.New(config, s, logger)
			defer app.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.Listen(ctx); err != nil {
				logger.Error("server stopped", "err", err)
			}
		},
	}
)

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config file")
}
