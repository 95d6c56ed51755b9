package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"flowstate/internal/config"
	"flowstate/internal/logging"
	"flowstate/internal/ui"
)

var version = "0.1.0"

// options shared by every subcommand
type rootOptions struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "flowctl",
		Short: "flowctl inspects and replays flowstate editor sessions",
		Long: ui.Brand.Sprint("flowctl") + " drives the flowstate graph engine from the command line\n" +
			ui.Subtle.Sprint("Show seed graphs, replay action scripts and read the action journal"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}
	cmd.SetVersionTemplate("flowctl {{ .Version }}\n")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		showCmd(opts),
		replayCmd(opts),
		checkCmd(opts),
		journalCmd(opts),
		configCmd(opts),
	)

	return cmd
}

func (o *rootOptions) load() error {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, _, err = config.LoadFromPath(o.configPath)
	} else {
		cfg, _, err = config.Load()
	}
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if o.logLevel == "" {
		// stay quiet unless asked
		o.logger = logging.Discard()
	}
	return nil
}

