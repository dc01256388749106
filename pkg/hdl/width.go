package hdl

import "github.com/pkg/errors"

// WidthError reports an operand-width mismatch discovered while sizing a
// WireBus or Operation against a Module's declared wires.
type WidthError struct {
	Context string
}

func (e *WidthError) Error() string { return "width error: " + e.Context }

func widthErrorf(format string, args ...interface{}) error {
	return errors.WithStack(&WidthError{Context: errors.Errorf(format, args...).Error()})
}

// Width returns a WirePart's bit width given the module it is resolved
// against: the declared width of the referenced wire range, or the
// literal length for a Constant part.
func (p WirePart) Width(m *Module) (int, error) {
	if p.IsConstant() {
		return len(p.Constant), nil
	}
	idx, w := m.FindWire(p.Name)
	if idx < 0 {
		return 0, widthErrorf("unknown wire %q referenced in module %s", p.Name, m.Name)
	}
	if p.Range.Total {
		return w.Width, nil
	}
	lo, hi := p.Range.From, p.Range.To
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 || hi >= w.Width {
		return 0, widthErrorf("invalid range [%d:%d] on wire %s (width %d) in module %s",
			p.Range.From, p.Range.To, p.Name, w.Width, m.Name)
	}
	return hi - lo + 1, nil
}

// Width sums the widths of a bus's parts.
func (b WireBus) Width(m *Module) (int, error) {
	total := 0
	for _, p := range b {
		w, err := p.Width(m)
		if err != nil {
			return 0, err
		}
		total += w
	}
	return total, nil
}

// Width computes an Operation's result width: Wire takes the bus
// width, Not preserves its operand's width, binary operators require
// equal operand widths and preserve it, and every reduction
// always yields width 1.
func (op *Operation) Width(m *Module) (int, error) {
	switch op.Kind {
	case OpWire:
		return op.Bus.Width(m)
	case OpNot:
		return op.A.Width(m)
	case OpAnd, OpOr, OpXor:
		wa, err := op.A.Width(m)
		if err != nil {
			return 0, err
		}
		wb, err := op.B.Width(m)
		if err != nil {
			return 0, err
		}
		if wa != wb {
			return 0, widthErrorf("operand width mismatch in module %s: %d vs %d", m.Name, wa, wb)
		}
		return wa, nil
	case OpAndReduce, OpOrReduce, OpXorReduce:
		if _, err := op.A.Width(m); err != nil {
			return 0, err
		}
		return 1, nil
	default:
		return 0, widthErrorf("unknown operation kind %d in module %s", op.Kind, m.Name)
	}
}

// indexBit returns the single-bit WirePart selecting logical bit `index`
// of bus (0-based, little-endian).
func indexBit(m *Module, bus WireBus, index int) (WirePart, error) {
	for _, part := range bus {
		w, err := part.Width(m)
		if err != nil {
			return WirePart{}, err
		}
		if index < w {
			if part.IsConstant() {
				return ConstantPart([]bool{part.Constant[index]}), nil
			}
			if part.Range.Total {
				return RangedPart(part.Name, index, index), nil
			}
			bit := part.Range.From + index
			if part.Range.From > part.Range.To {
				bit = part.Range.From - index
			}
			return RangedPart(part.Name, bit, bit), nil
		}
		index -= w
	}
	return WirePart{}, widthErrorf("bit index out of range for bus %s in module %s", bus, m.Name)
}
