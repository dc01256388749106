// Package hdl defines the in-memory shape produced by the NOR-HDL parser
// and the assignment-lowering pass that rewrites expression assignments
// into primitive gate instances.
package hdl

import "fmt"

// WireKind classifies a Wire's role at its owning module's boundary.
type WireKind int

const (
	Private WireKind = iota
	Input
	Output
)

func (k WireKind) String() string {
	switch k {
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return "private"
	}
}

// Wire is a named bit vector declared inside a module.
type Wire struct {
	Name  string
	Width int
	Kind  WireKind
}

// WireRange selects a sub-range of bits from a named wire. Total selects
// the whole wire; Ranged selects the inclusive range between From and
// To — From <= To walks ascending, From > To walks descending (the
// common `w[hi:lo]` hardware-description convention), so the bit at
// bus position 0 is always the part's From end.
type WireRange struct {
	Total bool
	From  int
	To    int
}

// WirePart is one element of a WireBus concatenation: either a reference
// into a named local wire, or an inline constant bit vector.
type WirePart struct {
	// Local reference fields; Name == "" marks a Constant part.
	Name  string
	Range WireRange

	// Constant bits, little-endian (index 0 is the LSB), when Name == "".
	Constant []bool
}

func (p WirePart) IsConstant() bool { return p.Name == "" }

// TotalPart references the entire named wire.
func TotalPart(name string) WirePart {
	return WirePart{Name: name, Range: WireRange{Total: true}}
}

// RangedPart references the inclusive bit range between from and to of
// name; from > to selects the range descending (bus position 0 is bit
// from).
func RangedPart(name string, from, to int) WirePart {
	return WirePart{Name: name, Range: WireRange{From: from, To: to}}
}

// ConstantPart returns a literal bit-vector part.
func ConstantPart(bits []bool) WirePart {
	return WirePart{Constant: bits}
}

// WireBus is an ordered concatenation of WireParts, bit index 0 first
// (little-endian).
type WireBus []WirePart

// OpKind tags the variant of an Operation tree node.
type OpKind int

const (
	OpWire OpKind = iota
	OpNot
	OpAnd
	OpOr
	OpXor
	OpAndReduce
	OpOrReduce
	OpXorReduce
)

// Operation is the algebraic expression tree on the right-hand side of a
// wire assignment.
type Operation struct {
	Kind Kind
	Bus  WireBus    // valid when Kind == OpWire
	A, B *Operation // operands; B is nil for unary/reduction kinds
}

// Kind is an alias kept for readability at call sites (Operation.Kind).
type Kind = OpKind

// WireOp builds an Operation wrapping a bus reference.
func WireOp(bus WireBus) *Operation { return &Operation{Kind: OpWire, Bus: bus} }

// NotOp, AndOp, OrOp, XorOp and the *Reduce variants build the
// corresponding Operation nodes.
func NotOp(a *Operation) *Operation      { return &Operation{Kind: OpNot, A: a} }
func AndOp(a, b *Operation) *Operation   { return &Operation{Kind: OpAnd, A: a, B: b} }
func OrOp(a, b *Operation) *Operation    { return &Operation{Kind: OpOr, A: a, B: b} }
func XorOp(a, b *Operation) *Operation   { return &Operation{Kind: OpXor, A: a, B: b} }
func AndReduceOp(a *Operation) *Operation { return &Operation{Kind: OpAndReduce, A: a} }
func OrReduceOp(a *Operation) *Operation  { return &Operation{Kind: OpOrReduce, A: a} }
func XorReduceOp(a *Operation) *Operation { return &Operation{Kind: OpXorReduce, A: a} }

// Connection binds a child module's port (by name) to a local-side bus.
type Connection struct {
	Port  string
	Local WireBus
}

// Instance is a module instantiation: a child module name, a local
// instance name, and its bound input/output port connections.
type Instance struct {
	Module  string
	Name    string
	Inputs  []Connection
	Outputs []Connection
}

// Assignment is a single expression-form wire assignment `bus = op;`
// inside a module body, prior to lowering.
type Assignment struct {
	Target WireBus
	Op     *Operation
}

// Module is `{name, locals, instances}`. Assignments are consumed (and
// removed) during lowering, which appends equivalent gate Instances.
type Module struct {
	Name        string
	Locals      []Wire
	Instances   []Instance
	Assignments []Assignment
}

// FindWire returns the index and Wire with the given name, or -1 if absent.
func (m *Module) FindWire(name string) (int, *Wire) {
	for i := range m.Locals {
		if m.Locals[i].Name == name {
			return i, &m.Locals[i]
		}
	}
	return -1, nil
}

// RootModuleName and PrimitiveName are the two designated module names
// this language reserves: the elaboration root and the NOR leaf
// primitive.
const (
	RootModuleName = "Top"
	PrimitiveName  = "Nor"
)

// PrimitivePorts are the fixed ports of the Nor primitive: a, b inputs of
// width 1 and out output of width 1.
var PrimitivePorts = []Wire{
	{Name: "a", Width: 1, Kind: Input},
	{Name: "b", Width: 1, Kind: Input},
	{Name: "out", Width: 1, Kind: Output},
}

func (b WireBus) String() string {
	s := ""
	for i, p := range b {
		if i > 0 {
			s += ", "
		}
		if p.IsConstant() {
			s += fmt.Sprintf("const(%d bits)", len(p.Constant))
		} else if p.Range.Total {
			s += p.Name
		} else {
			s += fmt.Sprintf("%s[%d:%d]", p.Name, p.Range.From, p.Range.To)
		}
	}
	return s
}
