package hdl

import "fmt"

// Resolver lowers a module's expression-form Assignments into primitive
// gate Instances: a single monotonically increasing counter names every
// temporary wire/gate it creates, and generated instances are appended
// (never spliced) to the module's instance list so later iteration over
// it during linking sees a stable, append-only view.
//
// The gate "modules" Not/And/Or/Xor/Buffer are ordinary modules built
// from Nor instances (see Builtins), which the linker merges in with
// linker.WithBuiltins; Nor is the only primitive the linker handles
// directly.
type Resolver struct {
	module  *Module
	counter uint64
}

// NewResolver returns a Resolver lowering assignments into m.
func NewResolver(m *Module) *Resolver {
	return &Resolver{module: m}
}

// LowerModule rewrites every Assignment in m into primitive gate
// Instances and clears m.Assignments. Width mismatches abort lowering
// with a *WidthError.
func LowerModule(m *Module) error {
	r := NewResolver(m)
	return r.resolveAssignments(m.Assignments)
}

func (r *Resolver) generateName() string {
	name := fmt.Sprintf("gen_%d", r.counter)
	r.counter++
	return name
}

func (r *Resolver) resolveAssignments(assignments []Assignment) error {
	for _, a := range assignments {
		if _, err := r.resolve(a.Op, a.Target); err != nil {
			return err
		}
	}
	r.module.Assignments = nil
	return nil
}

// resolve implements the §4.1 `resolve(op, target)` contract: it returns
// a bus holding op's result and, when target is non-nil, guarantees the
// returned bus equals target by emitting the gates/Buffers necessary.
func (r *Resolver) resolve(op *Operation, target WireBus) (WireBus, error) {
	width, err := op.Width(r.module)
	if err != nil {
		return nil, err
	}

	if op.Kind == OpWire {
		if target == nil {
			return op.Bus, nil
		}
		if err := r.emitUnary(op.Bus, target, "Buffer"); err != nil {
			return nil, err
		}
		return target, nil
	}

	out := target
	if out == nil {
		out = r.createBus(width)
	}

	switch op.Kind {
	case OpNot:
		in, err := r.resolve(op.A, nil)
		if err != nil {
			return nil, err
		}
		if err := r.emitUnary(in, out, "Not"); err != nil {
			return nil, err
		}
	case OpAnd, OpOr, OpXor:
		in1, err := r.resolve(op.A, nil)
		if err != nil {
			return nil, err
		}
		in2, err := r.resolve(op.B, nil)
		if err != nil {
			return nil, err
		}
		if err := r.emitBinary(in1, in2, out, gateName(op.Kind)); err != nil {
			return nil, err
		}
	case OpAndReduce, OpOrReduce, OpXorReduce:
		in, err := r.resolve(op.A, nil)
		if err != nil {
			return nil, err
		}
		if err := r.reduce(in, out, reduceGateName(op.Kind)); err != nil {
			return nil, err
		}
	default:
		return nil, widthErrorf("unsupported operation kind %d in module %s", op.Kind, r.module.Name)
	}

	return out, nil
}

func gateName(k OpKind) string {
	switch k {
	case OpAnd:
		return "And"
	case OpOr:
		return "Or"
	case OpXor:
		return "Xor"
	default:
		panic("gateName: not a binary op kind")
	}
}

func reduceGateName(k OpKind) string {
	switch k {
	case OpAndReduce:
		return "And"
	case OpOrReduce:
		return "Or"
	case OpXorReduce:
		return "Xor"
	default:
		panic("reduceGateName: not a reduction kind")
	}
}

// emitUnary appends one single-input/single-output gate instance per
// bit, connecting input bit i to output bit i.
func (r *Resolver) emitUnary(input, output WireBus, gateType string) error {
	width, err := input.Width(r.module)
	if err != nil {
		return err
	}
	for i := 0; i < width; i++ {
		in, err := indexBit(r.module, input, i)
		if err != nil {
			return err
		}
		out, err := indexBit(r.module, output, i)
		if err != nil {
			return err
		}
		r.module.Instances = append(r.module.Instances, Instance{
			Module: gateType,
			Name:   r.generateName(),
			Inputs: []Connection{{Port: "in", Local: WireBus{in}}},
			Outputs: []Connection{{Port: "out", Local: WireBus{out}}},
		})
	}
	return nil
}

// emitBinary appends one two-input gate instance per bit.
func (r *Resolver) emitBinary(in1, in2, output WireBus, gateType string) error {
	width, err := in1.Width(r.module)
	if err != nil {
		return err
	}
	for i := 0; i < width; i++ {
		a, err := indexBit(r.module, in1, i)
		if err != nil {
			return err
		}
		b, err := indexBit(r.module, in2, i)
		if err != nil {
			return err
		}
		out, err := indexBit(r.module, output, i)
		if err != nil {
			return err
		}
		r.module.Instances = append(r.module.Instances, Instance{
			Module: gateType,
			Name:   r.generateName(),
			Inputs: []Connection{
				{Port: "a", Local: WireBus{a}},
				{Port: "b", Local: WireBus{b}},
			},
			Outputs: []Connection{{Port: "out", Local: WireBus{out}}},
		})
	}
	return nil
}

// reduce implements the balanced-tree reduction of §4.1: width 1
// degenerates to a Buffer; otherwise the bus splits at W/2 into a lower
// half [0, W/2) and an upper half [W/2, W), each half wider than 1 bit
// is recursively reduced into a fresh 1-bit wire, and the two 1-bit
// results combine via the final two-input gate.
func (r *Resolver) reduce(input, output WireBus, gateType string) error {
	width, err := input.Width(r.module)
	if err != nil {
		return err
	}
	if width == 0 {
		return widthErrorf("cannot reduce a zero-width bus in module %s", r.module.Name)
	}
	if width == 1 {
		return r.emitUnary(input, output, "Buffer")
	}

	mid := width / 2
	lower, upper, err := r.splitBus(input, mid)
	if err != nil {
		return err
	}

	parts := [2]WireBus{lower, upper}
	var results [2]WireBus
	for i, part := range parts {
		w, err := part.Width(r.module)
		if err != nil {
			return err
		}
		if w == 1 {
			results[i] = part
			continue
		}
		wire := r.createBus(1)
		if err := r.reduce(part, wire, gateType); err != nil {
			return err
		}
		results[i] = wire
	}

	return r.emitBinary(results[0], results[1], output, gateType)
}

// splitBus partitions bus into bits [0, mid) and [mid, width).
func (r *Resolver) splitBus(bus WireBus, mid int) (WireBus, WireBus, error) {
	width, err := bus.Width(r.module)
	if err != nil {
		return nil, nil, err
	}
	var lower, upper WireBus
	for i := 0; i < width; i++ {
		bit, err := indexBit(r.module, bus, i)
		if err != nil {
			return nil, nil, err
		}
		if i < mid {
			lower = append(lower, bit)
		} else {
			upper = append(upper, bit)
		}
	}
	return lower, upper, nil
}

// createBus allocates a fresh private wire of the given width and
// returns a bus referencing it in full.
func (r *Resolver) createBus(width int) WireBus {
	name := r.generateName()
	r.module.Locals = append(r.module.Locals, Wire{Name: name, Width: width, Kind: Private})
	return WireBus{RangedPart(name, 0, width-1)}
}
