// Package main is the entry point for the pdgen CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gsdenys/pdgen/internal/cli"
	"github.com/gsdenys/pdgen/internal/ops"
	"github.com/gsdenys/pdgen/internal/probe"
	"github.com/gsdenys/pdgen/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	configPath string
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pdgen",
	Short: "pdgen - PostgreSQL documentation generator",
	Long: `pdgen generates documentation for PostgreSQL databases.

Database endpoints are kept as named connections in ~/.pdgen.
Use 'pdgen connection' to add, list, select and remove them.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"connection store file (default $"+storage.EnvConfig+" or ~/.pdgen)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.SetVersionTemplate("pdgen version {{.Version}}\n")
}

// newLogger returns a text logger on w at warn level, or debug when verbose.
func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// openStorage opens the store named by --config, $PDGEN_CONFIG or ~/.pdgen.
func openStorage() (*storage.Storage, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = storage.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return storage.Open(path)
}

// openRegistry wires the store, user settings, prober and logger together.
func openRegistry(cmd *cobra.Command) (*ops.Registry, error) {
	s, err := openStorage()
	if err != nil {
		return nil, err
	}

	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Color != nil {
		cli.SetColorEnabled(*cfg.Color)
	}

	log := newLogger(cmd.ErrOrStderr(), verbose)
	log.WithFields(logrus.Fields{
		"store":         s.ConfigFile(),
		"probe_timeout": cfg.ProbeTimeout,
		"color":         cli.ColorEnabled(),
	}).Debug("opened connection store")

	return ops.NewRegistry(s, probe.New(cfg.ProbeTimeout, log), log), nil
}

// openConsole returns the string-level console over the configured registry.
func openConsole(cmd *cobra.Command) (*cli.Console, error) {
	r, err := openRegistry(cmd)
	if err != nil {
		return nil, err
	}
	return cli.NewConsole(r), nil
}
