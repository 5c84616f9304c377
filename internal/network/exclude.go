package network

// Exclude returns a copy of the view without the given lines and stations.
// Closed stations are dropped from every line that served them, so trains on
// those lines run through without stopping. Lines left with no stops are
// dropped as well.
//
// The view already holds unique station and line codes, non-empty codes and
// lines without repeated stops, so none of the copies below can fail.
func Exclude(v View, name string, closedLines, closedStations map[string]bool) *Network {
	out := New(name)
	for _, s := range v.Stations() {
		if closedStations[s.code] {
			continue
		}
		_ = out.AddStation(s) // codes are unique in v
	}
	for _, l := range v.Lines() {
		if closedLines[l.code] {
			continue
		}
		nl, _ := NewLine(l.code, l.circular, l.oneWay) // l.code is non-empty
		for _, s := range l.stops {
			if closedStations[s.code] {
				continue
			}
			_ = nl.Add(s) // a subsequence of distinct stops
		}
		if nl.IsEmpty() {
			continue
		}
		_ = out.AddLine(nl) // every kept stop was added to out above
	}
	return out
}
