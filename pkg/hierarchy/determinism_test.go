package hierarchy_test

// Elaboration determinism is part of spec.md §5's ordering guarantees:
// linking the same source twice must produce byte-for-byte identical
// GraphModule trees (same allocation order, same instance ordering).
// GraphModule has no unexported fields and nests pointers (Instances),
// so a full recursive differ is exactly what
// github.com/google/go-cmp/cmp earns its keep on — a hand-rolled
// recursive equality check would just reimplement cmp.Diff poorly.

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vic/norhdl/pkg/hdl"
	"github.com/vic/norhdl/pkg/hierarchy"
	"github.com/vic/norhdl/pkg/linker"
)

const srLatchSource = `module Top()->(){
  wire s,r,q,nq;
  Nor a(a=r,b=nq)->(out=q);
  Nor b(a=s,b=q)->(out=nq);
}`

func linkOnce(t *testing.T, source string) *hierarchy.GraphModule {
	t.Helper()
	mods, err := hdl.ParseModules(source)
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
	_, graph, err := linker.Link(byName)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	return graph
}

func TestElaborationIsDeterministic(t *testing.T) {
	first := linkOnce(t, srLatchSource)
	second := linkOnce(t, srLatchSource)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("linking the same source twice produced different trees (-first +second):\n%s", diff)
	}
}

func TestElaborationTreeShapeMatchesSource(t *testing.T) {
	got := linkOnce(t, `module Not(in)->(out){ Nor inv(a=in,b=in)->(out); }
module Top()->(){ wire x,y; Not n(in=x)->(out=y); }`)

	want := &hierarchy.GraphModule{
		ModuleName:   "Top",
		InstanceName: "<root>",
		Locals: []hierarchy.GraphWire{
			{Name: "x", Values: []int{0}},
			{Name: "y", Values: []int{1}},
		},
		Instances: []*hierarchy.GraphModule{
			{
				ModuleName:   "Not",
				InstanceName: "n",
				Locals: []hierarchy.GraphWire{
					{Name: "in", Values: []int{0}},
					{Name: "out", Values: []int{1}},
				},
				Instances: []*hierarchy.GraphModule{
					{
						ModuleName:   "Nor",
						InstanceName: "<nor>",
						Locals: []hierarchy.GraphWire{
							{Name: "a", Values: []int{0}},
							{Name: "b", Values: []int{0}},
							{Name: "out", Values: []int{1}},
						},
					},
				},
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("elaborated tree mismatch (-want +got):\n%s", diff)
	}
}
