package planner

import "github.com/mini-rodalies-3d/metroplanner/internal/network"

// orientation picks the terminal a ride from index f to index t heads
// towards, and whether the ride uses the wrap of a circular line.
//
// One-way lines always head to terminal B; going to a lower index is only
// possible through the wrap. On a bidirectional circular line the wrap is
// taken only when it is strictly shorter than the direct path.
func orientation(l *network.Line, f, t int) (*network.Station, bool) {
	switch {
	case l.OneWay():
		return l.TerminalB(), t < f
	case l.Circular():
		direct := abs(t - f)
		wrap := l.Count() - direct
		if wrap < direct {
			if t < f {
				return l.TerminalB(), true
			}
			return l.TerminalA(), true
		}
		if f < t {
			return l.TerminalB(), false
		}
		return l.TerminalA(), false
	default:
		if f < t {
			return l.TerminalB(), false
		}
		return l.TerminalA(), false
	}
}

// hops counts the stops travelled from index f to index t
func hops(l *network.Line, f, t int, circular bool) int {
	if l.OneWay() {
		if t >= f {
			return t - f
		}
		return l.Count() - f + t
	}
	if circular {
		return l.Count() - abs(t-f)
	}
	return abs(t - f)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
