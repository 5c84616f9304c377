package planner

import "github.com/mini-rodalies-3d/metroplanner/internal/network"

// outwardIndices lists the positions reachable on l when boarding at entry,
// nearest first. The entry itself is not included.
//
// One-way lines are walked forward only, wrapping when circular.
// Bidirectional lines alternate ahead and behind (+1, -1, +2, -2, ...); on a
// linear line, once one side runs off the end the other side is exhausted.
func outwardIndices(l *network.Line, entry int) []int {
	n := l.Count()
	if n < 2 {
		return nil
	}
	out := make([]int, 0, n-1)

	if l.OneWay() {
		for step := 1; step < n; step++ {
			i := entry + step
			if i >= n {
				if !l.Circular() {
					break
				}
				i -= n
			}
			out = append(out, i)
		}
		return out
	}

	if l.Circular() {
		for step := 1; len(out) < n-1; step++ {
			out = append(out, (entry+step)%n)
			if len(out) < n-1 {
				out = append(out, ((entry-step)%n+n)%n)
			}
		}
		return out
	}

	ahead, behind := entry+1, entry-1
	for ahead < n || behind >= 0 {
		if ahead < n {
			out = append(out, ahead)
			ahead++
		}
		if behind >= 0 {
			out = append(out, behind)
			behind--
		}
	}
	return out
}

// stopAt returns the station at a position known to be in range
func stopAt(l *network.Line, i int) *network.Station {
	s, _ := l.Stop(i)
	return s
}
