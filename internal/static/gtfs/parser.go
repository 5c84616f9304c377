package gtfs

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ErrMissingFile is returned when a required file is absent from the feed
var ErrMissingFile = errors.New("gtfs file missing")

// ParseFile reads a GTFS zip from disk
func ParseFile(zipPath string) (*Feed, error) {
	f, err := os.Open(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat zip: %w", err)
	}
	return Parse(f, info.Size())
}

// Parse reads a GTFS zip. routes.txt, stops.txt, trips.txt and
// stop_times.txt are required; agency.txt is optional.
func Parse(r io.ReaderAt, size int64) (*Feed, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}

	files := make(map[string]*zip.File)
	for _, f := range zr.File {
		// some feeds ship their files inside a folder
		name := f.Name
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		files[name] = f
	}

	feed := &Feed{StopTimes: make(map[string][]StopTime)}

	if f, ok := files["agency.txt"]; ok {
		if err := eachRow(f, func(r row) {
			feed.Agencies = append(feed.Agencies, Agency{
				AgencyID:   r.get("agency_id"),
				AgencyName: r.get("agency_name"),
			})
		}); err != nil {
			log.Printf("Warning: failed to parse agency.txt: %v", err)
		}
	}

	required := []struct {
		name string
		fn   func(row)
	}{
		{"routes.txt", func(r row) {
			feed.Routes = append(feed.Routes, Route{
				RouteID:        r.get("route_id"),
				AgencyID:       r.get("agency_id"),
				RouteShortName: r.get("route_short_name"),
				RouteLongName:  r.get("route_long_name"),
				RouteType:      r.getInt("route_type"),
			})
		}},
		{"stops.txt", func(r row) {
			feed.Stops = append(feed.Stops, Stop{
				StopID:        r.get("stop_id"),
				StopName:      r.get("stop_name"),
				LocationType:  r.getInt("location_type"),
				ParentStation: r.get("parent_station"),
			})
		}},
		{"trips.txt", func(r row) {
			feed.Trips = append(feed.Trips, Trip{
				RouteID:     r.get("route_id"),
				TripID:      r.get("trip_id"),
				DirectionID: r.getInt("direction_id"),
			})
		}},
		{"stop_times.txt", func(r row) {
			st := StopTime{
				TripID:       r.get("trip_id"),
				StopID:       r.get("stop_id"),
				StopSequence: r.getInt("stop_sequence"),
			}
			feed.StopTimes[st.TripID] = append(feed.StopTimes[st.TripID], st)
		}},
	}
	for _, part := range required {
		f, ok := files[part.name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, part.name)
		}
		if err := eachRow(f, part.fn); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", part.name, err)
		}
	}

	for _, times := range feed.StopTimes {
		sort.SliceStable(times, func(i, j int) bool {
			return times[i].StopSequence < times[j].StopSequence
		})
	}

	log.Printf("GTFS parsed: %d routes, %d stops, %d trips, %d trips with stop times",
		len(feed.Routes), len(feed.Stops), len(feed.Trips), len(feed.StopTimes))

	return feed, nil
}

// row is one CSV record with its header index
type row struct {
	record []string
	idx    map[string]int
}

func (r row) get(field string) string {
	if i, ok := r.idx[field]; ok && i < len(r.record) {
		return strings.TrimSpace(r.record[i])
	}
	return ""
}

func (r row) getInt(field string) int {
	v, _ := strconv.Atoi(r.get(field))
	return v
}

// eachRow calls fn for every well-formed record of a CSV file in the zip.
// Malformed records are skipped.
func eachRow(f *zip.File, fn func(row)) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return err
	}
	idx := makeIndex(header)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			continue
		}
		fn(row{record: record, idx: idx})
	}
}

func makeIndex(header []string) map[string]int {
	idx := make(map[string]int)
	for i, h := range header {
		// strip a UTF-8 byte order mark from the first column
		idx[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}
	return idx
}
