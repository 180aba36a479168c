package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/timada-org/todo/internal/tui"
	"github.com/timada-org/todo/pkg/client"
)

var (
	apiURL string
	lang   string
	dark   bool

	tuiCmd = &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal client",

		Run: func(cmd *cobra.Command, args []string) {
			tag := tui.DetectLanguage(os.Getenv)
			if lang != "" {
				tag = tui.MatchLanguage(lang)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			c := client.New(apiURL, &http.Client{Timeout: 10 * time.Second})

			if err := tui.Run(ctx, c, tui.Options{Language: tag, Dark: dark}); err != nil {
				log.Fatal("terminal client", "err", err)
			}
		},
	}
)

func init() {
	tuiCmd.Flags().StringVar(&apiURL, "url", "http://localhost:8080", "todo API base URL")
	tuiCmd.Flags().StringVar(&lang, "lang", "", "UI language: en, ko or ja (detected from $LANG when empty)")
	tuiCmd.Flags().BoolVar(&dark, "dark", false, "start with the dark theme")
}
