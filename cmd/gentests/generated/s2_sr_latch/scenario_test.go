package gentests

import (
	_ "embed"
	"testing"

	gentests "github.com/vic/norhdl/cmd/gentests/helper"
)

//go:embed design.hdl
var design string

func Test_s2_sr_latch(t *testing.T) {
	gentests.CheckScenario(t, "s2_sr_latch", design, true, []gentests.Step{
		{Set: map[string][]bool{"s": {true}, "r": {false}}, Want: map[string][]bool{"q": {true}, "nq": {false}}},
		{Set: map[string][]bool{"s": {false}}, Want: map[string][]bool{"q": {true}, "nq": {false}}},
		{Set: map[string][]bool{"r": {true}, "s": {false}}, Want: map[string][]bool{"q": {false}, "nq": {true}}},
	})
}
