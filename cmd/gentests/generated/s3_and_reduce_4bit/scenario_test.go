package gentests

import (
	_ "embed"
	"testing"

	gentests "github.com/vic/norhdl/cmd/gentests/helper"
)

//go:embed design.hdl
var design string

func Test_s3_and_reduce_4bit(t *testing.T) {
	allTrue := gentests.Step{Set: map[string][]bool{"in": {true, true, true, true}}, Want: map[string][]bool{"out": {true}}}
	oneZero := gentests.Step{Set: map[string][]bool{"in": {true, true, true, false}}, Want: map[string][]bool{"out": {false}}}
	gentests.CheckScenario(t, "s3_and_reduce_4bit", design, true, []gentests.Step{allTrue, oneZero})
}
