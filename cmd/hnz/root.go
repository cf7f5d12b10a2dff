package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zoobzio/bindz/internal/config"
	"github.com/zoobzio/bindz/internal/observability"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type rootFlags struct {
	config   string
	endpoint string
	query    string
	subject  string
	page     int
	debug    bool
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:           "hnz",
		Short:         "Search Hacker News from the terminal",
		Long:          "hnz searches Hacker News stories as you type, by popularity or by date.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "path to config file (default $XDG_CONFIG_HOME/hnz/config.toml)")
	pf.StringVar(&f.endpoint, "endpoint", "", "search API base URL")
	pf.StringVar(&f.query, "query", "", "initial search text")
	pf.StringVar(&f.subject, "subject", "", "initial subject: popularity or date")
	pf.IntVar(&f.page, "page", 0, "initial page (zero-based)")
	pf.BoolVar(&f.debug, "debug", false, "log at debug level")

	root.AddCommand(newSearchCmd(f))
	root.AddCommand(versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hnz %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

// loadConfig reads the config file and applies the flags that were set on
// the command line over it.
func loadConfig(f *rootFlags, flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flags.Changed("endpoint") {
		cfg.Search.Endpoint = f.endpoint
	}
	if flags.Changed("query") {
		cfg.Search.Query = f.query
	}
	if flags.Changed("subject") {
		cfg.Search.Subject = f.subject
	}
	if flags.Changed("page") {
		cfg.Search.Page = f.page
	}
	if f.debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// openLogFile opens the configured log file for appending, creating its
// directory. An empty log.file selects $XDG_STATE_HOME/hnz/hnz.log.
func openLogFile(cfg *config.Config) (*slog.Logger, func(), error) {
	level, err := observability.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	path := cfg.Log.File
	if path == "" {
		path, err = xdg.StateFile(filepath.Join("hnz", "hnz.log"))
		if err != nil {
			return nil, nil, fmt.Errorf("resolving log path: %w", err)
		}
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return observability.NewLogger(file, level), func() { _ = file.Close() }, nil
}
