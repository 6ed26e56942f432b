// Package cmd wires the dsflat command line: one root command carrying
// the store configuration, and the dump, match and keys verbs on top of
// it. Records go to stdout; diagnostics go to stderr.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dynstore/dsflat/internal/config"
	"github.com/dynstore/dsflat/internal/query"
)

var (
	cfgFile string
	flagCfg = &config.Config{}
	verbose bool

	engine      *query.Engine
	storeCloser io.Closer
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "Path to an HCL config file (or DSFLAT_CONFIG)")
	pf.StringVar(&flagCfg.Store, "store", "", "Store binding: exec, http, dir, json or sqlite")
	pf.StringVar(&flagCfg.Command, "command", "", "Store utility for the exec binding")
	pf.StringSliceVar(&flagCfg.ListArgs, "list-args", nil, "Utility arguments for the subkey listing call")
	pf.StringSliceVar(&flagCfg.FetchArgs, "fetch-args", nil, "Utility arguments for the dump call (subkey appended)")
	pf.StringVar(&flagCfg.URL, "url", "", "Base URL for the http binding")
	pf.StringVar(&flagCfg.HTTPTimeout, "http-timeout", "", "Timeout per http round-trip, e.g. 15s")
	pf.StringVar(&flagCfg.Path, "path", "", "Snapshot path for the dir, json and sqlite bindings")
	pf.StringVar(&flagCfg.LogLevel, "log-level", "", "Log level for stderr diagnostics")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Force debug logging")
}

var rootCmd = &cobra.Command{
	Use:   "dsflat",
	Short: "dsflat: flatten a dynamic-store hierarchy into one record per value",
	Long: `dsflat reads the subkey trees of an external configuration store and
prints them as flat records: one comma-joined line per leaf value, each
line carrying its full path. Point it at a store with --store and the
binding's parameters, or keep those in an HCL file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile == "" {
			cfgFile = os.Getenv("DSFLAT_CONFIG")
		}
		if verbose {
			flagCfg.LogLevel = zerolog.LevelDebugValue
		}

		cfg, err := config.Load(cfgFile, flagCfg)
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		st, err := buildStore(cfg, log)
		if err != nil {
			return err
		}
		storeCloser = nil
		if closer, ok := st.(io.Closer); ok {
			storeCloser = closer
		}
		engine = query.NewEngine(st, log)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if storeCloser != nil {
			return storeCloser.Close()
		}
		return nil
	},
}

// newLogger builds the stderr diagnostic logger. Stdout stays reserved
// for records.
func newLogger(cfg *config.Config) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(cfg.Level()).
		With().
		Timestamp().
		Logger()
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
