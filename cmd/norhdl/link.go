package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vic/norhdl/pkg/netlist"
	"github.com/vic/norhdl/pkg/query"
)

// newLinkCmd elaborates a source path and reports only success/failure,
// logging the linker's typed LinkError taxonomy on failure. Exit code
// is 0 on a successful link, non-zero otherwise.
func newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <path>",
		Short: "elaborate a .hdl source file or directory and report whether it links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			mods, err := loadSource(path)
			if err != nil {
				return err
			}
			design, err := query.BuildModules(mods)
			if err != nil {
				if le, ok := netlist.AsLinkError(err); ok {
					log.WithField("kind", le.Kind.String()).Error(le.Context)
				}
				return err
			}
			log.WithField("module", design.Graph.ModuleName).Info("link succeeded")
			cmd.Println("OK")
			return nil
		},
	}
}
