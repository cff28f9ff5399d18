package main

import (
	"flag"
	"io"

	"github.com/charmbracelet/log"

	"github.com/hupe1980/stgkit"
)

// logFlags are shared by all subcommands.
type logFlags struct {
	level string
}

func (f *logFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.level, "log_level", "info", "log level: debug, info, warn, error")
}

// setup routes charmbracelet/log and the stgkit default logger to w.
// At debug level arena growth and table resizes become visible.
func (f *logFlags) setup(w io.Writer) error {
	level, err := log.ParseLevel(f.level)
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "stgsim",
		ReportTimestamp: true,
	})
	log.SetDefault(logger)
	stgkit.SetDefaultLogger(stgkit.NewLogger(logger))
	return nil
}
