package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pengelbrecht/investors/internal/config"
	"github.com/pengelbrecht/investors/internal/investor"
	"github.com/pengelbrecht/investors/internal/logging"
	"github.com/pengelbrecht/investors/internal/scroll"
	"github.com/pengelbrecht/investors/internal/view"
)

var version = "0.1.0"

// app carries what PersistentPreRunE prepared for the running command.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "investors",
		Short: "Browse, filter and sort investor profiles",
		Long: `Investors presents a collection of investor profiles: search by name or
expertise, filter by category and sort by name, number of investments or
portfolio size. Without a subcommand it opens the interactive browser, whose
header collapses as the list scrolls.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, a, false)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default investors.yaml in the working directory)")
	pf.String("data", "", "investor data file, YAML or JSON (default built-in sample)")
	pf.String("locale", config.DefaultLocale, "locale used to order names")
	pf.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	pf.String("log-file", "", "write logs to this file")

	rootCmd.AddCommand(newBrowseCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newHeaderCmd(a))
	rootCmd.AddCommand(newUpgradeCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))
	return rootCmd
}

// setup loads configuration and builds the logger. The browser owns the
// terminal, so it only logs to an explicit file.
func (a *app) setup(cmd *cobra.Command) error {
	loaded, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = loaded.Config

	headless := cmd.Name() != "browse" && cmd.Root() != cmd
	logger, err := logging.New(a.cfg.Log.Level, logging.Paths(a.cfg.Log.File, headless)...)
	if err != nil {
		return err
	}
	a.logger = logger
	if loaded.File != "" {
		a.logger.Debug("config loaded", zap.String("file", loaded.File))
	}
	return nil
}

// pipeline builds a view pipeline with the configured locale and criteria.
func (a *app) pipeline() (*view.Pipeline, error) {
	tag, err := a.cfg.Language()
	if err != nil {
		return nil, err
	}
	crit, err := a.cfg.InitialCriteria()
	if err != nil {
		return nil, err
	}
	return view.New(
		view.WithLogger(a.logger.Named("view")),
		view.WithLanguage(tag),
		view.WithCriteria(crit),
	), nil
}

func (a *app) interpolator() (*scroll.Interpolator, error) {
	return scroll.New(a.cfg.Bounds())
}

func (a *app) source() *investor.Source {
	return investor.NewSource(a.cfg.DataFile)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
