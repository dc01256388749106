package hdl

// Builtins returns the gate modules that assignment lowering (lower.go)
// emits instances of: Not, And, Or, Xor and Buffer. Each is expressed as
// a pure composition of Nor instances, so the linker needs no special
// case beyond the single Nor base case — these are ordinary modules
// that happen to bottom out in one or two NOR gates. Buffer is treated
// as a NOR-pair (Not(Not(x))) lowering rather than a primitive the
// linker must understand directly.
//
// Callers elaborating a design must merge these into their module map
// (see linker.WithBuiltins) alongside the user's own Nor declaration.
func Builtins() map[string]*Module {
	return map[string]*Module{
		"Not":    notModule(),
		"Buffer": bufferModule(),
		"Or":     orModule(),
		"And":    andModule(),
		"Xor":    xorModule(),
	}
}

func ioWire(name string, kind WireKind) Wire {
	return Wire{Name: name, Width: 1, Kind: kind}
}

func norInstance(name, a, b, out string) Instance {
	return Instance{
		Module: PrimitiveName,
		Name:   name,
		Inputs: []Connection{
			{Port: "a", Local: WireBus{TotalPart(a)}},
			{Port: "b", Local: WireBus{TotalPart(b)}},
		},
		Outputs: []Connection{{Port: "out", Local: WireBus{TotalPart(out)}}},
	}
}

// notModule: out = NOR(in, in).
func notModule() *Module {
	return &Module{
		Name: "Not",
		Locals: []Wire{
			ioWire("in", Input),
			ioWire("out", Output),
		},
		Instances: []Instance{
			norInstance("g0", "in", "in", "out"),
		},
	}
}

// bufferModule: out = NOT(NOT(in)), i.e. two chained NOR(x,x) gates.
func bufferModule() *Module {
	return &Module{
		Name: "Buffer",
		Locals: []Wire{
			ioWire("in", Input),
			ioWire("out", Output),
			{Name: "t", Width: 1, Kind: Private},
		},
		Instances: []Instance{
			norInstance("g0", "in", "in", "t"),
			norInstance("g1", "t", "t", "out"),
		},
	}
}

// orModule: out = NOT(NOR(a,b)) = NOR(NOR(a,b), NOR(a,b)).
func orModule() *Module {
	return &Module{
		Name: "Or",
		Locals: []Wire{
			ioWire("a", Input),
			ioWire("b", Input),
			ioWire("out", Output),
			{Name: "t", Width: 1, Kind: Private},
		},
		Instances: []Instance{
			norInstance("g0", "a", "b", "t"),
			norInstance("g1", "t", "t", "out"),
		},
	}
}

// andModule: out = NOR(NOT(a), NOT(b)) = a AND b.
func andModule() *Module {
	return &Module{
		Name: "And",
		Locals: []Wire{
			ioWire("a", Input),
			ioWire("b", Input),
			ioWire("out", Output),
			{Name: "na", Width: 1, Kind: Private},
			{Name: "nb", Width: 1, Kind: Private},
		},
		Instances: []Instance{
			norInstance("g0", "a", "a", "na"),
			norInstance("g1", "b", "b", "nb"),
			norInstance("g2", "na", "nb", "out"),
		},
	}
}

// xorModule: the standard 5-NOR XOR. n1..n3 form the usual 4-NOR XNOR
// (NOR(n2,n3) = (a|!b)&(!a|b) = XNOR(a,b)), so a final inverting NOR
// stage (g4, NOR(n4,n4)) flips it to XOR:
//
//	n1 = NOR(a, b)
//	n2 = NOR(a, n1)
//	n3 = NOR(b, n1)
//	n4 = NOR(n2, n3)   // = XNOR(a, b)
//	out = NOR(n4, n4)  // = !n4 = XOR(a, b)
func xorModule() *Module {
	return &Module{
		Name: "Xor",
		Locals: []Wire{
			ioWire("a", Input),
			ioWire("b", Input),
			ioWire("out", Output),
			{Name: "n1", Width: 1, Kind: Private},
			{Name: "n2", Width: 1, Kind: Private},
			{Name: "n3", Width: 1, Kind: Private},
			{Name: "n4", Width: 1, Kind: Private},
		},
		Instances: []Instance{
			norInstance("g0", "a", "b", "n1"),
			norInstance("g1", "a", "n1", "n2"),
			norInstance("g2", "b", "n1", "n3"),
			norInstance("g3", "n2", "n3", "n4"),
			norInstance("g4", "n4", "n4", "out"),
		},
	}
}
