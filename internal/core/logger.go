package core

import (
	"io"

	"github.com/charmbracelet/log"
)

func NewLogger(cfg Log, w io.Writer) *log.Logger {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter(cfg.Format),
		ReportTimestamp: true,
		Prefix:          "todo",
	})
}

func formatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
