// Command gentests regenerates the fixture packages under
// cmd/gentests/generated: one directory per scenario, each holding an
// embedded .hdl source and a test that drives it through
// helper.CheckScenario.
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

type scenario struct {
	Name   string
	Source string
	Body   string
}

const testTemplate = `package gentests

import (
	_ "embed"
	"testing"

	gentests "github.com/vic/norhdl/cmd/gentests/helper"
)

//go:embed design.hdl
var design string

func Test_%s(t *testing.T) {
%s
}
`

func main() {
	scenarios := []scenario{
		{
			Name: "s1_inverter",
			Source: `module Not(in)->(out){ Nor inv(a=in,b=in)->(out); }
module Top()->(){ wire x,y; Not n(in=x)->(out=y); }
`,
			Body: `	gentests.CheckScenario(t, "s1_inverter", design, true, []gentests.Step{
		{Set: map[string][]bool{"x": {true}}, Want: map[string][]bool{"y": {false}}},
		{Set: map[string][]bool{"x": {false}}, Want: map[string][]bool{"y": {true}}},
	})`,
		},
		{
			Name: "s2_sr_latch",
			Source: `module Top()->(){
  wire s,r,q,nq;
  Nor a(a=r,b=nq)->(out=q);
  Nor b(a=s,b=q)->(out=nq);
}
`,
			Body: `	gentests.CheckScenario(t, "s2_sr_latch", design, true, []gentests.Step{
		{Set: map[string][]bool{"s": {true}, "r": {false}}, Want: map[string][]bool{"q": {true}, "nq": {false}}},
		{Set: map[string][]bool{"s": {false}}, Want: map[string][]bool{"q": {true}, "nq": {false}}},
		{Set: map[string][]bool{"r": {true}, "s": {false}}, Want: map[string][]bool{"q": {false}, "nq": {true}}},
	})`,
		},
		{
			Name: "s3_and_reduce_4bit",
			Source: `module Top()->(){
  wire in[4], out;
  out = &in;
}
`,
			Body: `	allTrue := gentests.Step{Set: map[string][]bool{"in": {true, true, true, true}}, Want: map[string][]bool{"out": {true}}}
	oneZero := gentests.Step{Set: map[string][]bool{"in": {true, true, true, false}}, Want: map[string][]bool{"out": {false}}}
	gentests.CheckScenario(t, "s3_and_reduce_4bit", design, true, []gentests.Step{allTrue, oneZero})`,
		},
		{
			Name: "s4_recursion_rejected",
			Source: `module A()->(){ wire w; B b(in=w)->(out=w); }
module B(in)->(out){ wire w; A a()->(); out = in; }
module Top()->(){ A a()->(); }
`,
			Body: `	gentests.CheckScenario(t, "s4_recursion_rejected", design, false, nil)`,
		},
		{
			Name: "s5_multiple_drivers_rejected",
			Source: `module Top()->(){
  wire a,b,out;
  Nor n1(a=a,b=a)->(out=out);
  Nor n2(a=b,b=b)->(out=out);
}
`,
			Body: `	gentests.CheckScenario(t, "s5_multiple_drivers_rejected", design, false, nil)`,
		},
		{
			Name: "s6_hex_constant",
			Source: `module Top()->(){
  wire out[8];
  out[7:0] = 0x42;
}
`,
			Body: `	gentests.CheckScenario(t, "s6_hex_constant", design, true, []gentests.Step{
		{Run: 0, Want: map[string][]bool{"out": {false, true, false, false, false, false, true, false}}},
	})`,
		},
		{
			// Locks in the derived-gate truth tables at the behavioral level:
			// a=1,b=1 is exactly the case that would expose the Xor builtin
			// computing XNOR instead of XOR (see DESIGN.md).
			Name: "s7_derived_gate_truth_tables",
			Source: `module Top()->(){
  wire a,b,orOut,xorOut,andOut;
  wire r[3],orR,xorR;
  Or o(a=a,b=b)->(out=orOut);
  Xor x(a=a,b=b)->(out=xorOut);
  And n(a=a,b=b)->(out=andOut);
  orR = |r;
  xorR = ^r;
}
`,
			Body: `	gentests.CheckScenario(t, "s7_derived_gate_truth_tables", design, true, []gentests.Step{
		{Set: map[string][]bool{"a": {false}, "b": {false}}, Want: map[string][]bool{"orOut": {false}, "xorOut": {false}, "andOut": {false}}},
		{Set: map[string][]bool{"a": {false}, "b": {true}}, Want: map[string][]bool{"orOut": {true}, "xorOut": {true}, "andOut": {false}}},
		{Set: map[string][]bool{"a": {true}, "b": {false}}, Want: map[string][]bool{"orOut": {true}, "xorOut": {true}, "andOut": {false}}},
		{Set: map[string][]bool{"a": {true}, "b": {true}}, Want: map[string][]bool{"orOut": {true}, "xorOut": {false}, "andOut": {true}}},
		{Set: map[string][]bool{"r": {false, false, false}}, Want: map[string][]bool{"orR": {false}, "xorR": {false}}},
		{Set: map[string][]bool{"r": {true, false, false}}, Want: map[string][]bool{"orR": {true}, "xorR": {true}}},
		{Set: map[string][]bool{"r": {true, true, false}}, Want: map[string][]bool{"orR": {true}, "xorR": {false}}},
		{Set: map[string][]bool{"r": {true, true, true}}, Want: map[string][]bool{"orR": {true}, "xorR": {true}}},
	})`,
		},
	}

	baseDir := "cmd/gentests/generated"
	os.MkdirAll(baseDir, 0755)

	for _, s := range scenarios {
		dir := filepath.Join(baseDir, s.Name)
		os.MkdirAll(dir, 0755)
		os.WriteFile(filepath.Join(dir, "design.hdl"), []byte(s.Source), 0644)
		testGo := fmt.Sprintf(testTemplate, s.Name, s.Body)
		os.WriteFile(filepath.Join(dir, "scenario_test.go"), []byte(testGo), 0644)
	}

	fmt.Printf("Generated %d scenario fixtures\n", len(scenarios))
}
