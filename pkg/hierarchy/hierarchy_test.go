package hierarchy

import "testing"

type fakeDisplay struct{ wires map[int]bool }

func (f fakeDisplay) DisplayWire(indices []int) string {
	out := "0b"
	for i := len(indices) - 1; i >= 0; i-- {
		if f.wires[indices[i]] {
			out += "1"
		} else {
			out += "0"
		}
	}
	return out
}

func buildTree() *GraphModule {
	leaf := &GraphModule{
		ModuleName:   "Not",
		InstanceName: "n",
		Locals: []GraphWire{
			{Name: "in", Values: []int{0}},
			{Name: "out", Values: []int{1}},
		},
	}
	return &GraphModule{
		ModuleName:   "Top",
		InstanceName: "<root>",
		Locals: []GraphWire{
			{Name: "x", Values: []int{0}},
			{Name: "y", Values: []int{1}},
		},
		Instances: []*GraphModule{leaf},
	}
}

func TestWireAddrTopLevel(t *testing.T) {
	root := buildTree()
	addr, err := root.WireAddr([]string{"x"})
	if err != nil {
		t.Fatalf("WireAddr: %v", err)
	}
	if len(addr) != 1 || addr[0] != 0 {
		t.Errorf("addr = %v, want [0]", addr)
	}
}

func TestWireAddrThroughInstance(t *testing.T) {
	root := buildTree()
	addr, err := root.WireAddr([]string{"n", "out"})
	if err != nil {
		t.Fatalf("WireAddr: %v", err)
	}
	if len(addr) != 1 || addr[0] != 1 {
		t.Errorf("addr = %v, want [1]", addr)
	}
}

func TestWireAddrUnknownPathErrors(t *testing.T) {
	root := buildTree()
	if _, err := root.WireAddr([]string{"nope"}); err == nil {
		t.Errorf("expected an error for an unknown wire")
	}
	if _, err := root.WireAddr([]string{"n", "nope"}); err == nil {
		t.Errorf("expected an error for an unknown wire inside an instance")
	}
}

func TestInstanceNameTakesPrecedenceOverLocal(t *testing.T) {
	root := buildTree()
	// Add a local wire literally named "n", same as the child instance.
	root.Locals = append(root.Locals, GraphWire{Name: "n", Values: []int{2}})
	addr, err := root.WireAddr([]string{"n", "out"})
	if err != nil {
		t.Fatalf("WireAddr: %v", err)
	}
	if len(addr) != 1 || addr[0] != 1 {
		t.Errorf("instance precedence violated: addr = %v, want [1]", addr)
	}
}

func TestDisplayPathRendersWireValue(t *testing.T) {
	root := buildTree()
	wd := fakeDisplay{wires: map[int]bool{1: true}}
	desc, err := root.DisplayPath([]string{"y"}, wd)
	if err != nil {
		t.Fatalf("DisplayPath: %v", err)
	}
	if desc != "y: 0b1" {
		t.Errorf("DisplayPath = %q, want %q", desc, "y: 0b1")
	}
}

func TestDisplayPathRendersModule(t *testing.T) {
	root := buildTree()
	wd := fakeDisplay{}
	desc, err := root.DisplayPath(nil, wd)
	if err != nil {
		t.Fatalf("DisplayPath: %v", err)
	}
	want := "Top::<root>\n  Wires:\n    x: 0b0\n    y: 0b0\n  Instances:\n    Not::n\n"
	if desc != want {
		t.Errorf("DisplayPath = %q, want %q", desc, want)
	}
}
