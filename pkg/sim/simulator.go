// Package sim implements the event-driven NOR simulator: a dirty-queue
// engine that relaxes a netlist.Netlist to a fixed point.
//
// Dependency lists are built once at construction, and a dirty bitset
// plus a FIFO queue avoid re-processing a gate already scheduled for
// re-evaluation. No priority lanes or concurrency are needed since a
// single synchronous owner drives the simulator end to end.
package sim

import (
	"fmt"

	"github.com/vic/norhdl/pkg/netlist"
)

// Simulator owns a Netlist and the bookkeeping needed to relax it:
// dependents (which gates read which wire), a dirty flag per gate, and a
// FIFO of dirty gate indices.
type Simulator struct {
	net        *netlist.Netlist
	dependents [][]int
	dirty      []bool
	queue      []int
	head       int

	trace    []Event
	tracing  bool
	traceCap int
}

// Event records one committed gate update, for optional diagnostics.
type Event struct {
	Step int
	Gate int
	From bool
	To   bool
}

// New builds a Simulator over net. Every gate starts dirty, since the
// all-zero initial wire state need not match any gate's computed output.
func New(net *netlist.Netlist) *Simulator {
	s := &Simulator{
		net:        net,
		dependents: make([][]int, len(net.Wires)),
		dirty:      make([]bool, len(net.Gates)),
	}

	seen := make([]map[int]bool, len(net.Wires))
	for gi, g := range net.Gates {
		for _, w := range []int{g.A, g.B} {
			if seen[w] == nil {
				seen[w] = make(map[int]bool)
			}
			if !seen[w][gi] {
				seen[w][gi] = true
				s.dependents[w] = append(s.dependents[w], gi)
			}
		}
	}

	s.queue = make([]int, len(net.Gates))
	for i := range net.Gates {
		s.queue[i] = i
		s.dirty[i] = true
	}

	return s
}

// EnableTrace turns on event recording with a bounded ring-style log
// capacity (oldest events are dropped once capacity is exceeded).
func (s *Simulator) EnableTrace(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	s.tracing = true
	s.traceCap = capacity
	s.trace = nil
}

// DisableTrace stops recording (existing events are kept until the next
// EnableTrace call clears them).
func (s *Simulator) DisableTrace() { s.tracing = false }

// Trace returns a snapshot of recorded events.
func (s *Simulator) Trace() []Event {
	out := make([]Event, len(s.trace))
	copy(out, s.trace)
	return out
}

func (s *Simulator) recordTrace(gate int, from, to bool) {
	if !s.tracing {
		return
	}
	s.trace = append(s.trace, Event{Step: len(s.trace), Gate: gate, From: from, To: to})
	if len(s.trace) > s.traceCap {
		s.trace = s.trace[len(s.trace)-s.traceCap:]
	}
}

func (s *Simulator) dequeue() (int, bool) {
	if s.head >= len(s.queue) {
		return 0, false
	}
	g := s.queue[s.head]
	s.head++
	// Reclaim the drained prefix once it gets large, so a long-running
	// simulator doesn't grow queue without bound.
	if s.head > 1024 && s.head*2 > len(s.queue) {
		s.queue = append([]int(nil), s.queue[s.head:]...)
		s.head = 0
	}
	s.dirty[g] = false
	return g, true
}

func (s *Simulator) enqueue(gate int) {
	if !s.dirty[gate] {
		s.dirty[gate] = true
		s.queue = append(s.queue, gate)
	}
}

func (s *Simulator) enqueueDependents(wire int) {
	for _, g := range s.dependents[wire] {
		s.enqueue(g)
	}
}

// Update dequeues and recomputes one gate. It is a no-op if the queue is
// empty. The dirty flag is cleared before recomputation (in dequeue) so
// that a gate whose output transitively feeds its own input on the same
// tick re-enqueues correctly.
func (s *Simulator) Update() bool {
	gate, ok := s.dequeue()
	if !ok {
		return false
	}
	g := s.net.Gates[gate]
	newVal := !(s.net.Wires[g.A] || s.net.Wires[g.B])
	if newVal != s.net.Wires[g.Out] {
		old := s.net.Wires[g.Out]
		s.net.Wires[g.Out] = newVal
		s.recordTrace(gate, old, newVal)
		s.enqueueDependents(g.Out)
	}
	return true
}

// IsStable reports whether the event queue is empty.
func (s *Simulator) IsStable() bool {
	return s.head >= len(s.queue)
}

// SetValue overwrites a wire and re-enqueues every gate reading it. This
// is the only way external state may be injected after elaboration —
// callers must never write netlist.Netlist.Wires
// directly once a Simulator owns it.
func (s *Simulator) SetValue(idx int, value bool) {
	s.net.Wires[idx] = value
	s.enqueueDependents(idx)
}

// GetValue reads a single wire's current value.
func (s *Simulator) GetValue(idx int) bool {
	return s.net.Wires[idx]
}

// Run steps the simulator until stable, or until count events have been
// consumed if count > 0 (0 means unbounded). It returns IsStable() on
// return.
func (s *Simulator) Run(count int) bool {
	bounded := count > 0
	for !s.IsStable() {
		if bounded {
			if count == 0 {
				break
			}
			count--
		}
		s.Update()
	}
	return s.IsStable()
}

// DisplayWire implements hierarchy.WireDisplayer: "0b" followed by bits
// from the highest index to the lowest (MSB-first rendering of the
// little-endian bit order).
func (s *Simulator) DisplayWire(indices []int) string {
	out := "0b"
	for i := len(indices) - 1; i >= 0; i-- {
		if s.net.Wires[indices[i]] {
			out += "1"
		} else {
			out += "0"
		}
	}
	return out
}

// GetBits returns the little-endian bit vector at indices.
func (s *Simulator) GetBits(indices []int) []bool {
	bits := make([]bool, len(indices))
	for i, idx := range indices {
		bits[i] = s.net.Wires[idx]
	}
	return bits
}

// SetBits writes values into indices in order. Extra bits in indices
// retain their prior value if values is shorter; the
// mismatch is reported via the returned bool (true means values was
// short) rather than an error, since it is a warning, not a failure.
func (s *Simulator) SetBits(indices []int, values []bool) (short bool) {
	for i, idx := range indices {
		if i >= len(values) {
			return true
		}
		s.SetValue(idx, values[i])
	}
	return false
}

func (s *Simulator) String() string {
	return fmt.Sprintf("Simulator{wires=%d gates=%d queued=%d}", len(s.net.Wires), len(s.net.Gates), len(s.queue)-s.head)
}
