// Command norhdl is the CLI driver for the NOR-HDL compiler+simulator
// core (pkg/hdl, pkg/linker, pkg/sim, pkg/query). It elaborates a
// directory of .hdl sources and exposes the query/mutation surface as
// a batch script runner rather than an interactive REPL or FFI shim.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	debug    bool
	cfg      runConfig
	logLevel = log.InfoLevel
)

func main() {
	root := &cobra.Command{
		Use:   "norhdl",
		Short: "norhdl — a NOR-gate hardware description language compiler and simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded
			if debug {
				cfg.LogLevel = "debug"
			}
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				level = log.InfoLevel
			}
			log.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", ".norhdl.yaml", "run configuration file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(newLinkCmd())
	root.AddCommand(newRunCmd())

	if err := root.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
