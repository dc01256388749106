package gentests

import (
	_ "embed"
	"testing"

	gentests "github.com/vic/norhdl/cmd/gentests/helper"
)

//go:embed design.hdl
var design string

func Test_s5_multiple_drivers_rejected(t *testing.T) {
	gentests.CheckScenario(t, "s5_multiple_drivers_rejected", design, false, nil)
}
