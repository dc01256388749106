package linker

import (
	"testing"

	"github.com/vic/norhdl/pkg/hdl"
	"github.com/vic/norhdl/pkg/netlist"
	"github.com/vic/norhdl/pkg/sim"
)

func build(t *testing.T, src string) (*netlist.Netlist, error) {
	t.Helper()
	mods, err := hdl.ParseModules(src)
	if err != nil {
		t.Fatalf("ParseModules: %v", err)
	}
	byName := make(map[string]*hdl.Module, len(mods))
	for _, m := range mods {
		byName[m.Name] = m
	}
	for _, m := range byName {
		if err := hdl.LowerModule(m); err != nil {
			t.Fatalf("LowerModule(%s): %v", m.Name, err)
		}
	}
	net, _, err := Link(byName)
	return net, err
}

func wantKind(t *testing.T, err error, kind netlist.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a %s error, link succeeded", kind)
	}
	le, ok := netlist.AsLinkError(err)
	if !ok {
		t.Fatalf("expected a *netlist.LinkError, got %T: %v", err, err)
	}
	if le.Kind != kind {
		t.Errorf("error kind = %s, want %s", le.Kind, kind)
	}
}

func TestLinkSRLatch(t *testing.T) {
	net, err := build(t, `module Top()->(){
  wire s,r,q,nq;
  Nor a(a=r,b=nq)->(out=q);
  Nor b(a=s,b=q)->(out=nq);
}`)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if len(net.Gates) != 2 {
		t.Errorf("len(Gates) = %d, want 2", len(net.Gates))
	}
}

func TestLinkMissingTopIsUnknownModule(t *testing.T) {
	_, err := build(t, `module Foo()->(){}`)
	wantKind(t, err, netlist.UnknownModule)
}

func TestLinkRecursionDetected(t *testing.T) {
	_, err := build(t, `module A()->(){ wire w; B b(in=w)->(out=w); }
module B(in)->(out){ wire w; A a()->(); out = in; }
module Top()->(){ A a()->(); }`)
	wantKind(t, err, netlist.Recursion)
}

func TestLinkDuplicateWireName(t *testing.T) {
	_, err := build(t, `module Top()->(){ wire a; wire a; }`)
	wantKind(t, err, netlist.DuplicateWireName)
}

func TestLinkUnknownWireInConnection(t *testing.T) {
	_, err := build(t, `module Top()->(){ wire a,b; Nor n(a=a,b=missing)->(out=b); }`)
	wantKind(t, err, netlist.UnknownWire)
}

func TestLinkIncorrectWireKind(t *testing.T) {
	_, err := build(t, `module Top()->(){ wire a,b,c; Nor n(a=a,b=b,out=c)->(); }`)
	wantKind(t, err, netlist.IncorrectWireKind)
}

func TestLinkMismatchedWireSize(t *testing.T) {
	_, err := build(t, `module Inv(in)->(out[2]){ }
module Top()->(){ wire x,y; Inv n(in=x)->(out=y); }`)
	wantKind(t, err, netlist.MismatchedWireSize)
}

func TestLinkMissingIOWires(t *testing.T) {
	_, err := build(t, `module Top()->(){ wire a; Nor n(a=a,b=a)->(); }`)
	wantKind(t, err, netlist.MissingIOWires)
}

func TestLinkMultipleDrivers(t *testing.T) {
	_, err := build(t, `module Top()->(){
  wire a,b,out;
  Nor n1(a=a,b=a)->(out=out);
  Nor n2(a=b,b=b)->(out=out);
}`)
	wantKind(t, err, netlist.MultipleDrivers)
}

func TestLinkNoDriver(t *testing.T) {
	_, err := build(t, `module Top()->(){ wire out; }`)
	wantKind(t, err, netlist.NoDriver)
}

func TestLinkDescendingRangeAssignsHighToLow(t *testing.T) {
	net, err := build(t, `module Top()->(){ wire out[8]; out[7:0] = 0x42; }`)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	// The constant reaches out through Buffer gates, so let them settle
	// before reading the wires.
	sim.New(net).Run(0)
	// 0x42 = 0b01000010, little-endian bits [0,1,0,0,0,0,1,0].
	want := []bool{false, true, false, false, false, false, true, false}
	for i, w := range want {
		if net.Wires[i] != w {
			t.Errorf("out bit %d = %v, want %v", i, net.Wires[i], w)
		}
	}
}

// TestAssertPrivateWiresNotPreBoundPanics exercises the spec.md §7
// invariant directly: a connection naming a private port always fails
// with IncorrectWireKind before bindConnections ever writes to its
// childAllocated slot, so this path is unreachable through the parser.
// Drive assertPrivateWiresNotPreBound itself with a rigged childAllocated
// to confirm the invariant violation aborts the process instead of
// surfacing as an ordinary *netlist.LinkError.
func TestAssertPrivateWiresNotPreBoundPanics(t *testing.T) {
	parent := &hdl.Module{Name: "Parent"}
	inst := hdl.Instance{Module: "Child", Name: "c"}
	child := &hdl.Module{
		Name: "Child",
		Locals: []hdl.Wire{
			{Name: "p", Width: 1, Kind: hdl.Private},
		},
	}
	childAllocated := [][]int{{0}}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for a pre-bound private wire")
		}
	}()
	assertPrivateWiresNotPreBound(parent, inst, child, childAllocated)
}
