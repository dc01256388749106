package gentests

import (
	_ "embed"
	"testing"

	gentests "github.com/vic/norhdl/cmd/gentests/helper"
)

//go:embed design.hdl
var design string

func Test_s6_hex_constant(t *testing.T) {
	gentests.CheckScenario(t, "s6_hex_constant", design, true, []gentests.Step{
		{Run: 0, Want: map[string][]bool{"out": {false, true, false, false, false, false, true, false}}},
	})
}
