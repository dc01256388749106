// Package netlist holds the flat, elaborated representation of a design:
// one bit per wire index, one NorGate per gate.
package netlist

import "github.com/pkg/errors"

// NorGate computes Out = ¬(Wires[A] ∨ Wires[B]).
type NorGate struct {
	A, B, Out int
}

// Netlist is the flat, bit-indexed output of elaboration: a value per
// wire index and a NOR gate per structural driver.
type Netlist struct {
	Wires []bool
	Gates []NorGate
}

// New returns an empty Netlist.
func New() *Netlist {
	return &Netlist{}
}

// AllocateWire extends Wires by width zeroed bits and returns the index
// of the first one.
func (n *Netlist) AllocateWire(width int) int {
	begin := len(n.Wires)
	for i := 0; i < width; i++ {
		n.Wires = append(n.Wires, false)
	}
	return begin
}

// CreateNor appends a gate after asserting its indices are in range.
func (n *Netlist) CreateNor(a, b, out int) error {
	for _, idx := range []int{a, b, out} {
		if idx < 0 || idx >= len(n.Wires) {
			return errors.Errorf("netlist: gate index %d out of range (have %d wires)", idx, len(n.Wires))
		}
	}
	n.Gates = append(n.Gates, NorGate{A: a, B: b, Out: out})
	return nil
}

// SetInitial directly writes a wire's value. Used only during elaboration
// to seed Constant bits; after elaboration all mutation must go through
// a Simulator.
func (n *Netlist) SetInitial(idx int, value bool) {
	n.Wires[idx] = value
}
