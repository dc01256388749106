package gentests

import (
	_ "embed"
	"testing"

	gentests "github.com/vic/norhdl/cmd/gentests/helper"
)

//go:embed design.hdl
var design string

func Test_s7_derived_gate_truth_tables(t *testing.T) {
	gentests.CheckScenario(t, "s7_derived_gate_truth_tables", design, true, []gentests.Step{
		{Set: map[string][]bool{"a": {false}, "b": {false}}, Want: map[string][]bool{"orOut": {false}, "xorOut": {false}, "andOut": {false}}},
		{Set: map[string][]bool{"a": {false}, "b": {true}}, Want: map[string][]bool{"orOut": {true}, "xorOut": {true}, "andOut": {false}}},
		{Set: map[string][]bool{"a": {true}, "b": {false}}, Want: map[string][]bool{"orOut": {true}, "xorOut": {true}, "andOut": {false}}},
		{Set: map[string][]bool{"a": {true}, "b": {true}}, Want: map[string][]bool{"orOut": {true}, "xorOut": {false}, "andOut": {true}}},
		{Set: map[string][]bool{"r": {false, false, false}}, Want: map[string][]bool{"orR": {false}, "xorR": {false}}},
		{Set: map[string][]bool{"r": {true, false, false}}, Want: map[string][]bool{"orR": {true}, "xorR": {true}}},
		{Set: map[string][]bool{"r": {true, true, false}}, Want: map[string][]bool{"orR": {true}, "xorR": {false}}},
		{Set: map[string][]bool{"r": {true, true, true}}, Want: map[string][]bool{"orR": {true}, "xorR": {true}}},
	})
}
