package gentests

import (
	_ "embed"
	"testing"

	gentests "github.com/vic/norhdl/cmd/gentests/helper"
)

//go:embed design.hdl
var design string

func Test_s1_inverter(t *testing.T) {
	gentests.CheckScenario(t, "s1_inverter", design, true, []gentests.Step{
		{Set: map[string][]bool{"x": {true}}, Want: map[string][]bool{"y": {false}}},
		{Set: map[string][]bool{"x": {false}}, Want: map[string][]bool{"y": {true}}},
	})
}
