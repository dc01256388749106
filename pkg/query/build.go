package query

import (
	"github.com/pkg/errors"

	"github.com/vic/norhdl/pkg/hdl"
	"github.com/vic/norhdl/pkg/linker"
	"github.com/vic/norhdl/pkg/sim"
)

// Build runs the full pipeline: parse source into modules, lower each
// module's expression assignments into primitive gates, elaborate from
// Top, and wrap the result in a Design ready for querying. File-system
// discovery and any host-language binding are left to callers.
func Build(source string) (*Design, error) {
	mods, err := hdl.ParseModules(source)
	if err != nil {
		return nil, err
	}
	return BuildModules(mods)
}

// BuildModules elaborates an already-parsed module list, merging
// multiple such lists first (e.g. one per source file) is the caller's
// responsibility — see cmd/norhdl's directory-walk, which keeps this
// library free of source-file-discovery policy.
func BuildModules(mods []*hdl.Module) (*Design, error) {
	byName := make(map[string]*hdl.Module, len(mods))
	for _, m := range mods {
		if _, dup := byName[m.Name]; dup {
			return nil, errors.Errorf("duplicate module definition: %q", m.Name)
		}
		byName[m.Name] = m
	}

	for _, m := range byName {
		if err := hdl.LowerModule(m); err != nil {
			return nil, errors.Wrapf(err, "lowering module %q", m.Name)
		}
	}

	net, graph, err := linker.Link(byName)
	if err != nil {
		return nil, err
	}

	return &Design{Graph: graph, Sim: sim.New(net)}, nil
}
