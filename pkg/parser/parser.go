package parser

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ecomove/routeplanner/pkg/datastructure"
)

// EdgeRecord is one row of the distances file. Times use
// datastructure.TravelTimeUnavailable where the source data says "X".
type EdgeRecord struct {
	From        string
	To          string
	DrivingTime float64
	WalkingTime float64
}

// CleanCode strips whitespace from a location code.
func CleanCode(code string) string {
	return strings.Join(strings.Fields(code), "")
}

// ParseLocations reads the locations csv (Location,Id,Code,Parking), header
// row skipped. Parking is "1" for parking-capable locations.
func ParseLocations(filename string) ([]datastructure.Location, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	locations := make([]datastructure.Location, 0, len(records))
	for i, row := range records {
		if i == 0 {
			continue // header
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("locations file %s: row %d has %d fields, want 4", filename, i+1, len(row))
		}
		id, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("locations file %s: row %d: bad id %q", filename, i+1, row[1])
		}
		locations = append(locations, datastructure.NewLocation(
			int32(id),
			CleanCode(row[2]),
			strings.TrimSpace(row[0]),
			strings.TrimSpace(row[3]) == "1",
		))
	}
	return locations, nil
}

func parseTravelTime(field string) (float64, error) {
	field = strings.TrimSpace(field)
	if strings.EqualFold(field, "X") {
		return datastructure.TravelTimeUnavailable, nil
	}
	return strconv.ParseFloat(field, 64)
}

// ParseDistances reads the distances csv (Location1,Location2,Driving,
// Walking), header row skipped.
func ParseDistances(filename string) ([]EdgeRecord, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	edges := make([]EdgeRecord, 0, len(records))
	for i, row := range records {
		if i == 0 {
			continue // header
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("distances file %s: row %d has %d fields, want 4", filename, i+1, len(row))
		}
		driving, err := parseTravelTime(row[2])
		if err != nil {
			return nil, fmt.Errorf("distances file %s: row %d: bad driving time %q", filename, i+1, row[2])
		}
		walking, err := parseTravelTime(row[3])
		if err != nil {
			return nil, fmt.Errorf("distances file %s: row %d: bad walking time %q", filename, i+1, row[3])
		}
		edges = append(edges, EdgeRecord{
			From:        CleanCode(row[0]),
			To:          CleanCode(row[1]),
			DrivingTime: driving,
			WalkingTime: walking,
		})
	}
	return edges, nil
}

// BuildGraph constructs the location graph from parsed edge rows.
func BuildGraph(edges []EdgeRecord) *datastructure.Graph {
	g := datastructure.NewGraph()
	for _, e := range edges {
		g.AddEdge(e.From, e.To, e.DrivingTime, e.WalkingTime)
	}
	return g
}
