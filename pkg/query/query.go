// Package query implements the thin Query/Mutation surface: read/write
// wire bits by dotted path, step the simulation, and render inspection
// strings — the operations an outer driver (a CLI, a REPL, a
// foreign-callable shim) issues against an elaborated design.
package query

import (
	"strings"

	"github.com/vic/norhdl/pkg/hierarchy"
	"github.com/vic/norhdl/pkg/sim"
)

// Design bundles the two pieces an elaborated program produces: the
// retained hierarchy tree and the simulator over its netlist. It is the
// single handle a CLI driver needs after a successful Link.
type Design struct {
	Graph *hierarchy.GraphModule
	Sim   *sim.Simulator
}

// SplitPath splits a dotted path "p0.p1.p2" into its segments. An empty
// string yields an empty (zero-length) path, naming the root module.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Simulate runs up to count events (0 = unbounded) and returns whether
// the simulator is stable on return.
func (d *Design) Simulate(count int) bool {
	return d.Sim.Run(count)
}

// GetValue returns the little-endian bits at path, or nil on any
// resolution error: query errors surface as an empty result, never
// fatal.
func (d *Design) GetValue(path string) []bool {
	addr, err := d.Graph.WireAddr(SplitPath(path))
	if err != nil {
		return nil
	}
	return d.Sim.GetBits(addr)
}

// SetValue writes values at path. Extra bits in the wire retain their
// prior value if values is short; a short vector is reported via the
// returned bool, never as an error.
func (d *Design) SetValue(path string, values []bool) (ok bool, short bool) {
	addr, err := d.Graph.WireAddr(SplitPath(path))
	if err != nil {
		return false, false
	}
	return true, d.Sim.SetBits(addr, values)
}

// GetWidth returns the bit width at path, or 0 on error.
func (d *Design) GetWidth(path string) int {
	w, err := d.Graph.WireWidth(SplitPath(path))
	if err != nil {
		return 0
	}
	return w
}

// GetDescription renders path's display string, or an empty string and
// the resolution error (the CLI layer decides whether to print it to
// stderr; the library never treats it as fatal).
func (d *Design) GetDescription(path string) (string, error) {
	return d.Graph.DisplayPath(SplitPath(path), d.Sim)
}
