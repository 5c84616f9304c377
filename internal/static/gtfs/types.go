package gtfs

// Feed holds the parts of a GTFS feed needed to rebuild line topology
type Feed struct {
	Agencies []Agency
	Routes   []Route
	Stops    []Stop
	Trips    []Trip

	// StopTimes is keyed by trip_id, each slice sorted by stop_sequence
	StopTimes map[string][]StopTime
}

// Agency is a row of agency.txt
type Agency struct {
	AgencyID   string
	AgencyName string
}

// Route is a row of routes.txt
type Route struct {
	RouteID        string
	AgencyID       string
	RouteShortName string
	RouteLongName  string
	RouteType      int
}

// Stop is a row of stops.txt
type Stop struct {
	StopID        string
	StopName      string
	LocationType  int
	ParentStation string
}

// Trip is a row of trips.txt
type Trip struct {
	RouteID     string
	TripID      string
	DirectionID int
}

// StopTime is a row of stop_times.txt
type StopTime struct {
	TripID       string
	StopID       string
	StopSequence int
}

// Route types used by BuildNetwork filters
const (
	RouteTypeTram   = 0
	RouteTypeSubway = 1
	RouteTypeRail   = 2
	RouteTypeBus    = 3
)
