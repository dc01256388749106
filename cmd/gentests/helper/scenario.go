// Package gentests holds the shared scenario-check helper used by every
// generated fixture test: a sequence of set/run/get steps driven
// against an elaborated design.
package gentests

import (
	"testing"

	"github.com/vic/norhdl/pkg/query"
)

// Step is one action in a scenario: set each path in Set to its bits,
// run up to Run events (0 = until stable), then assert that each path in
// Want reads back its bits.
type Step struct {
	Set  map[string][]bool
	Run  int
	Want map[string][]bool
}

// CheckScenario elaborates source, expects elaboration to succeed iff
// wantLinkOK, and — when it does — drives it through steps, reporting
// every mismatched get_value as a test error.
func CheckScenario(t *testing.T, name, source string, wantLinkOK bool, steps []Step) {
	design, err := query.Build(source)
	if wantLinkOK && err != nil {
		t.Fatalf("%s: expected link to succeed, got error: %v", name, err)
	}
	if !wantLinkOK {
		if err == nil {
			t.Fatalf("%s: expected link to fail, it succeeded", name)
		}
		return
	}

	for i, step := range steps {
		for path, bits := range step.Set {
			if ok, short := design.SetValue(path, bits); !ok {
				t.Fatalf("%s: step %d: set_value(%q) failed to resolve", name, i, path)
			} else if short {
				t.Fatalf("%s: step %d: set_value(%q) fewer bits than width", name, i, path)
			}
		}
		design.Simulate(step.Run)
		for path, want := range step.Want {
			got := design.GetValue(path)
			if !equalBits(got, want) {
				t.Errorf("%s: step %d: get_value(%q) = %v, want %v", name, i, path, got, want)
			}
		}
	}
}

func equalBits(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
