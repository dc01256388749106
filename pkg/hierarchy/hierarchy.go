// Package hierarchy implements the retained elaboration tree (GraphModule)
// and the dotted-path resolution/rendering operations over it, using the
// same name-keyed lookup style used across this codebase.
package hierarchy

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// GraphWire is a local wire's name together with its flattened bit
// indices into the owning Simulator's wire array.
type GraphWire struct {
	Name   string
	Values []int
}

// GraphModule is one node of the retained elaboration tree: it mirrors
// one linked Module instantiation. ModuleName is the source module's
// name; InstanceName is "<root>" at the elaboration root, "<nor>" at a
// Nor leaf, and otherwise the enclosing Instance's local name.
type GraphModule struct {
	ModuleName   string
	InstanceName string
	Locals       []GraphWire
	Instances    []*GraphModule
}

// InvalidPathError is the only error the hierarchy index can return:
// a dotted path that doesn't resolve.
type InvalidPathError struct {
	Path string
}

func (e *InvalidPathError) Error() string {
	return "invalid path: " + e.Path
}

func invalidPath(path []string, format string, args ...interface{}) error {
	return errors.WithStack(&InvalidPathError{Path: strings.Join(path, ".") + ": " + errors.Errorf(format, args...).Error()})
}

// findLocal returns the local wire named name, or nil.
func (g *GraphModule) findLocal(name string) *GraphWire {
	for i := range g.Locals {
		if g.Locals[i].Name == name {
			return &g.Locals[i]
		}
	}
	return nil
}

// findInstance returns the child instance named name, or nil. Name
// collisions between an instance and a local wire resolve to the
// instance, which is why callers check findInstance before findLocal.
func (g *GraphModule) findInstance(name string) *GraphModule {
	for _, c := range g.Instances {
		if c.InstanceName == name {
			return c
		}
	}
	return nil
}

// resolve descends path[:-1] through child instances and returns the
// final GraphModule together with the last path segment (the wire name).
func (g *GraphModule) resolve(path []string) (*GraphModule, string, error) {
	if len(path) == 0 {
		return nil, "", invalidPath(path, "path is empty; it would name a module, not a wire")
	}
	node := g
	for _, seg := range path[:len(path)-1] {
		if inst := node.findInstance(seg); inst != nil {
			node = inst
			continue
		}
		return nil, "", invalidPath(path, "no instance named %q in %s::%s", seg, node.ModuleName, node.InstanceName)
	}
	return node, path[len(path)-1], nil
}

// WireAddr returns the flattened netlist bit indices a dotted path
// resolves to. Instances take precedence over same-named locals at
// every level.
func (g *GraphModule) WireAddr(path []string) ([]int, error) {
	node, last, err := g.resolve(path)
	if err != nil {
		return nil, err
	}
	if inst := node.findInstance(last); inst != nil {
		return nil, invalidPath(path, "%q names a module instance, not a wire", last)
	}
	if w := node.findLocal(last); w != nil {
		return w.Values, nil
	}
	return nil, invalidPath(path, "no field named %q in %s::%s", last, node.ModuleName, node.InstanceName)
}

// WireWidth returns len(WireAddr(path)).
func (g *GraphModule) WireWidth(path []string) (int, error) {
	addr, err := g.WireAddr(path)
	if err != nil {
		return 0, err
	}
	return len(addr), nil
}

// WireDisplayer renders a wire's current value given its flattened bit
// indices; implemented by a Simulator snapshot (see pkg/sim).
type WireDisplayer interface {
	DisplayWire(indices []int) string
}

// displayWire renders "name: 0b...." for a single GraphWire.
func (w GraphWire) displayWire(wd WireDisplayer) string {
	return fmt.Sprintf("%s: %s", w.Name, wd.DisplayWire(w.Values))
}

// display renders this module's own wires and child-instance listing
// with a two-space indent.
func (g *GraphModule) display(wd WireDisplayer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s::%s\n", g.ModuleName, g.InstanceName)
	b.WriteString("  Wires:\n")
	for _, w := range g.Locals {
		fmt.Fprintf(&b, "    %s\n", w.displayWire(wd))
	}
	b.WriteString("  Instances:\n")
	for _, c := range g.Instances {
		fmt.Fprintf(&b, "    %s::%s\n", c.ModuleName, c.InstanceName)
	}
	return b.String()
}

// DisplayPath renders a path: a module-ending path lists its wires and
// child instances, a wire-ending path renders its name and current
// value. An empty path renders the root module itself.
func (g *GraphModule) DisplayPath(path []string, wd WireDisplayer) (string, error) {
	node := g
	for i, seg := range path {
		if inst := node.findInstance(seg); inst != nil {
			node = inst
			continue
		}
		if w := node.findLocal(seg); w != nil {
			if i != len(path)-1 {
				return "", invalidPath(path, "wire %q reached before end of path", seg)
			}
			return w.displayWire(wd), nil
		}
		return "", invalidPath(path, "no field named %q in %s::%s", seg, node.ModuleName, node.InstanceName)
	}
	return node.display(wd), nil
}
