package gentests

import (
	_ "embed"
	"testing"

	gentests "github.com/vic/norhdl/cmd/gentests/helper"
)

//go:embed design.hdl
var design string

func Test_s4_recursion_rejected(t *testing.T) {
	gentests.CheckScenario(t, "s4_recursion_rejected", design, false, nil)
}
