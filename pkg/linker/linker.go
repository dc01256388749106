// Package linker implements the elaborator: it expands a module
// hierarchy into a flat netlist.Netlist plus a retained
// hierarchy.GraphModule tree, validating structural wiring as it goes.
//
// The recursive per-module linking procedure, drive_count bookkeeping
// and bit-walk follow Module::link from the original Rust
// implementation this was ported from; shared mutable state (net and
// descent) threads through recursive calls rather than storing
// back-references, the same way this module's graph-builder passes
// work.
package linker

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vic/norhdl/pkg/hdl"
	"github.com/vic/norhdl/pkg/hierarchy"
	"github.com/vic/norhdl/pkg/netlist"
)

const rootInstanceName = "<root>"
const norInstanceName = "<nor>"

// WithBuiltins returns a copy of modules with the gate modules
// synthesized by assignment lowering (hdl.Builtins) merged in, plus a
// synthetic Nor primitive if the caller's source didn't declare one.
// User-declared entries always win: the source is free to give Nor,
// Not, And, Or, Xor, or Buffer bodies of its own.
func WithBuiltins(modules map[string]*hdl.Module) map[string]*hdl.Module {
	merged := make(map[string]*hdl.Module, len(modules)+6)
	for name, b := range hdl.Builtins() {
		merged[name] = b
	}
	if _, ok := modules[hdl.PrimitiveName]; !ok {
		merged[hdl.PrimitiveName] = &hdl.Module{Name: hdl.PrimitiveName, Locals: append([]hdl.Wire(nil), hdl.PrimitivePorts...)}
	}
	for name, m := range modules {
		merged[name] = m
	}
	return merged
}

// Link elaborates the module named hdl.RootModuleName ("Top") found in
// modules (after merging in WithBuiltins), returning the flat Netlist
// and the retained GraphModule tree, or the first structural error
// encountered.
func Link(modules map[string]*hdl.Module) (*netlist.Netlist, *hierarchy.GraphModule, error) {
	all := WithBuiltins(modules)
	root, ok := all[hdl.RootModuleName]
	if !ok {
		return nil, nil, netlist.NewLinkError(netlist.UnknownModule, "no %q module found", hdl.RootModuleName)
	}

	net := netlist.New()
	l := &linker{modules: all, net: net}

	graph, err := l.linkModule(root, rootInstanceName, make([][]int, len(root.Locals)))
	if err != nil {
		return nil, nil, err
	}
	return net, graph, nil
}

type linker struct {
	modules map[string]*hdl.Module
	net     *netlist.Netlist
	descent []string
}

// linkModule is the per-module elaboration procedure. allocatedWires
// holds, for each of mod's locals, its elaborated bit-index vector; I/O
// entries arrive pre-populated by the caller's port-binding step, and
// private entries are filled here.
func (l *linker) linkModule(mod *hdl.Module, instanceName string, allocatedWires [][]int) (*hierarchy.GraphModule, error) {
	for _, ancestor := range l.descent {
		if ancestor == mod.Name {
			return nil, netlist.NewLinkError(netlist.Recursion, "module %q re-enters itself (descent: %v)", mod.Name, l.descent)
		}
	}

	seen := make(map[string]bool, len(mod.Locals))
	for _, w := range mod.Locals {
		if seen[w.Name] {
			return nil, netlist.NewLinkError(netlist.DuplicateWireName, "module %q declares wire %q twice", mod.Name, w.Name)
		}
		seen[w.Name] = true
	}

	if mod.Name == hdl.PrimitiveName {
		if err := l.net.CreateNor(allocatedWires[0][0], allocatedWires[1][0], allocatedWires[2][0]); err != nil {
			return nil, errors.WithStack(err)
		}
		return &hierarchy.GraphModule{
			ModuleName:   mod.Name,
			InstanceName: norInstanceName,
			Locals: []hierarchy.GraphWire{
				{Name: "a", Values: []int{allocatedWires[0][0]}},
				{Name: "b", Values: []int{allocatedWires[1][0]}},
				{Name: "out", Values: []int{allocatedWires[2][0]}},
			},
		}, nil
	}

	driveCount := make([][]int, len(mod.Locals))
	for i, w := range mod.Locals {
		driveCount[i] = make([]int, w.Width)
		if w.Kind == hdl.Input {
			for b := range driveCount[i] {
				driveCount[i][b] = 1
			}
		}
		if w.Kind == hdl.Private {
			begin := l.net.AllocateWire(w.Width)
			idxs := make([]int, w.Width)
			for b := 0; b < w.Width; b++ {
				idxs[b] = begin + b
			}
			allocatedWires[i] = idxs
		}
	}

	graph := &hierarchy.GraphModule{ModuleName: mod.Name, InstanceName: instanceName}
	for i, w := range mod.Locals {
		graph.Locals = append(graph.Locals, hierarchy.GraphWire{Name: w.Name, Values: allocatedWires[i]})
	}

	// readBits holds every netlist bit bound to an input port of one of
	// this module's instances.
	readBits := make(map[int]bool)

	for _, inst := range mod.Instances {
		child, ok := l.modules[inst.Module]
		if !ok {
			return nil, netlist.NewLinkError(netlist.UnknownModule, "in module %q: instance %q references unknown module %q", mod.Name, inst.Name, inst.Module)
		}

		childAllocated := make([][]int, len(child.Locals))
		if err := l.bindConnections(mod, allocatedWires, driveCount, child, inst.Inputs, hdl.Input, childAllocated); err != nil {
			return nil, err
		}
		if err := l.bindConnections(mod, allocatedWires, driveCount, child, inst.Outputs, hdl.Output, childAllocated); err != nil {
			return nil, err
		}

		assertPrivateWiresNotPreBound(mod, inst, child, childAllocated)

		for i, w := range child.Locals {
			if w.Kind == hdl.Private {
				continue
			}
			if len(childAllocated[i]) == 0 {
				return nil, netlist.NewLinkError(netlist.MissingIOWires, "in module %q: instance %q leaves %s port %q of %q unbound", mod.Name, inst.Name, w.Kind, w.Name, child.Name)
			}
			if w.Kind == hdl.Input {
				for _, idx := range childAllocated[i] {
					readBits[idx] = true
				}
			}
		}

		l.descent = append(l.descent, mod.Name)
		childGraph, err := l.linkModule(child, inst.Name, childAllocated)
		l.descent = l.descent[:len(l.descent)-1]
		if err != nil {
			return nil, err
		}
		// linkModule already stamped childGraph.InstanceName: inst.Name for
		// an ordinary module, or the "<nor>" sentinel for a Nor leaf — do
		// not overwrite it here, or every leaf would lose that sentinel.
		graph.Instances = append(graph.Instances, childGraph)
	}

	for i, w := range mod.Locals {
		// Outputs/private wires must gain exactly one internal driver;
		// inputs start pre-credited to 1 by the parent and must gain none.
		// The root has no parent: an undriven private bit of the root that
		// some instance reads is an external input, written through the
		// simulator, and is not a NoDriver error.
		const expected = 1
		for bit, count := range driveCount[i] {
			if count > expected {
				return nil, netlist.NewLinkError(netlist.MultipleDrivers, "bit %d of wire %q in module %q is driven %d times, expected %d", bit, w.Name, mod.Name, count, expected)
			}
			if count == 0 && instanceName == rootInstanceName && w.Kind == hdl.Private && readBits[allocatedWires[i][bit]] {
				continue
			}
			if count < expected {
				return nil, netlist.NewLinkError(netlist.NoDriver, "bit %d of wire %q in module %q is not driven", bit, w.Name, mod.Name)
			}
		}
	}

	return graph, nil
}

// assertPrivateWiresNotPreBound panics if childAllocated pre-populates one
// of child's private locals. bindConnections can never do this through the
// parser: any connection naming a private port fails with
// IncorrectWireKind before a slot is ever written, since a connection's
// kind parameter is always hdl.Input or hdl.Output, never hdl.Private. A
// pre-bound private slot therefore means a caller bypassed bindConnections
// and corrupted linker state directly — per spec.md §7 this is an internal
// invariant violation, not a structural error in the source, so it aborts
// the process rather than being surfaced as a LinkError.
func assertPrivateWiresNotPreBound(parent *hdl.Module, inst hdl.Instance, child *hdl.Module, childAllocated [][]int) {
	for i, w := range child.Locals {
		if w.Kind == hdl.Private && len(childAllocated[i]) != 0 {
			panic(fmt.Sprintf("linker: in module %q: private wire %q of %q was pre-bound by instance %q; this is an elaborator invariant violation, not a source error", parent.Name, w.Name, child.Name, inst.Name))
		}
	}
}

// bindConnections binds one direction (input or output ports) of an
// instance: each Connection evaluates its local-side bus against the
// parent's allocated wires (alloc_wirebus), and the result is recorded
// at the matching child-port index.
func (l *linker) bindConnections(parent *hdl.Module, parentAllocated, driveCount [][]int, child *hdl.Module, conns []hdl.Connection, kind hdl.WireKind, childAllocated [][]int) error {
	for _, conn := range conns {
		idx, port := child.FindWire(conn.Port)
		if idx < 0 {
			return netlist.NewLinkError(netlist.UnknownWire, "in module %q: module %q has no port named %q", parent.Name, child.Name, conn.Port)
		}
		if port.Kind != kind {
			return netlist.NewLinkError(netlist.IncorrectWireKind, "in module %q: port %q of %q is %s, expected %s", parent.Name, conn.Port, child.Name, port.Kind, kind)
		}

		addr, err := l.allocWireBus(parent, parentAllocated, driveCount, conn.Local, kind == hdl.Output)
		if err != nil {
			return err
		}
		if len(addr) != port.Width {
			return netlist.NewLinkError(netlist.MismatchedWireSize, "in module %q: port %q of %q has width %d, bound bus has width %d", parent.Name, conn.Port, child.Name, port.Width, len(addr))
		}
		childAllocated[idx] = addr
	}
	return nil
}

// allocWireBus is alloc_wirebus: it flattens bus into
// netlist indices against the parent module's allocated wires, bumping
// driveCount for bits the instance drives (isOutputSide) and allocating
// and initializing fresh bits for Constant parts.
func (l *linker) allocWireBus(parent *hdl.Module, parentAllocated, driveCount [][]int, bus hdl.WireBus, isOutputSide bool) ([]int, error) {
	var addr []int
	for _, part := range bus {
		if part.IsConstant() {
			begin := l.net.AllocateWire(len(part.Constant))
			for i, bit := range part.Constant {
				l.net.SetInitial(begin+i, bit)
				addr = append(addr, begin+i)
			}
			continue
		}

		idx, w := parent.FindWire(part.Name)
		if idx < 0 {
			return nil, netlist.NewLinkError(netlist.UnknownWire, "in module %q: no local wire named %q", parent.Name, part.Name)
		}
		from, to := 0, w.Width-1
		descending := false
		if !part.Range.Total {
			from, to = part.Range.From, part.Range.To
			descending = from > to
			lo, hi := from, to
			if descending {
				lo, hi = to, from
			}
			if lo < 0 || hi >= w.Width {
				return nil, netlist.NewLinkError(netlist.MismatchedWireSize, "in module %q: range [%d:%d] invalid for wire %q (width %d)", parent.Name, from, to, part.Name, w.Width)
			}
		}
		walk := func(fn func(bit int)) {
			if descending {
				for b := from; b >= to; b-- {
					fn(b)
				}
				return
			}
			for b := from; b <= to; b++ {
				fn(b)
			}
		}
		walk(func(b int) {
			addr = append(addr, parentAllocated[idx][b])
			if isOutputSide {
				driveCount[idx][b]++
			}
		})
	}
	return addr, nil
}
