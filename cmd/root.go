package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/timada-org/todo/internal/core"
	"github.com/timada-org/todo/internal/events"
	"github.com/timada-org/todo/internal/store"
	"github.com/timada-org/todo/pkg/todo"
)

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "todo",
		Short: "A minimal todo list service",
		Long:  `Todo serves a small CRUD API over todo items, as an HTTP server or an API Gateway Lambda, and ships a terminal client for it.`,
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (defaults are used when empty)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lambdaCmd)
	rootCmd.AddCommand(tuiCmd)
}

func loadConfig() (*core.Config, *log.Logger) {
	config, err := core.NewConfig(cfgFile)
	if err != nil {
		log.Fatal("loading config", "path", cfgFile, "err", err)
	}

	return config, core.NewLogger(config.Log, os.Stderr)
}

// openStore opens the configured store and, when a broker is configured,
// wraps it so mutations are published as change events.
func openStore(config *core.Config, logger *log.Logger) (todo.Store, error) {
	s, err := store.Open(config.Store.Driver, config.Store.DSN, nil)
	if err != nil {
		return nil, err
	}

	if config.Broker.URL == "" {
		return s, nil
	}

	publisher, err := events.NewPulsarPublisher(events.PulsarOptions{
		URL:   config.Broker.URL,
		Topic: config.Broker.Topic,
		Name:  config.Broker.Name,
	})
	if err != nil {
		s.Close()
		return nil, err
	}

	logger.Info("publishing changes", "broker", config.Broker.URL, "topic", config.Broker.Topic)

	return events.NewStore(s, publisher, logger), nil
}
